package paymentgateway_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	gatewayDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/paymentgateway"
	"github.com/alphagrips/academy-backend/internal/paymentgateway"
)

func TestPaymentGateway(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PaymentGateway Suite")
}

var _ = Describe("Signature verification", func() {
	It("matches the known HMAC-SHA256 vector", func() {
		Expect(paymentgateway.SignPayload("s", "order_1", "pay_1")).
			To(Equal("742a38a9b459999e738a2d54e89b9f64b144535a09efaf21054dc143460d16c7"))
	})

	It("accepts a signature computed with the same secret", func() {
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client := paymentgateway.NewClient("http://unused", "key", "secret", time.Second, 1, log)

		sig := paymentgateway.SignPayload("secret", "order_42", "pay_42")
		Expect(client.VerifySignature("order_42", "pay_42", sig)).To(BeTrue())
	})

	It("rejects a signature from a different secret", func() {
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client := paymentgateway.NewClient("http://unused", "key", "secret", time.Second, 1, log)

		forged := paymentgateway.SignPayload("wrong-secret", "order_42", "pay_42")
		Expect(client.VerifySignature("order_42", "pay_42", forged)).To(BeFalse())
	})
})

var _ = Describe("CreateOrder", func() {
	var log *slog.Logger

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	It("returns the order on success", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/v1/orders"))
			user, pass, ok := r.BasicAuth()
			Expect(ok).To(BeTrue())
			Expect(user).To(Equal("key"))
			Expect(pass).To(Equal("secret"))

			json.NewEncoder(w).Encode(gatewayDatamodel.Order{
				ID: "order_abc", Amount: 60000, Currency: "INR", Status: "created",
			})
		}))
		defer server.Close()

		client := paymentgateway.NewClient(server.URL, "key", "secret", time.Second, 3, log)
		order, err := client.CreateOrder(context.Background(), &gatewayDatamodel.OrderRequest{
			Amount: 60000, Currency: "INR",
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(order.ID).To(Equal("order_abc"))
		Expect(order.Amount).To(Equal(int64(60000)))
	})

	It("retries server errors and succeeds on a later attempt", func() {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			json.NewEncoder(w).Encode(gatewayDatamodel.Order{ID: "order_retry", Amount: 100})
		}))
		defer server.Close()

		client := paymentgateway.NewClient(server.URL, "key", "secret", time.Second, 3, log)
		order, err := client.CreateOrder(context.Background(), &gatewayDatamodel.OrderRequest{Amount: 100, Currency: "INR"})
		Expect(err).ToNot(HaveOccurred())
		Expect(order.ID).To(Equal("order_retry"))
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(3)))
	})

	It("does not retry client errors", func() {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := paymentgateway.NewClient(server.URL, "key", "secret", time.Second, 3, log)
		_, err := client.CreateOrder(context.Background(), &gatewayDatamodel.OrderRequest{Amount: 100, Currency: "INR"})
		Expect(err).To(HaveOccurred())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(1)))
	})
})
