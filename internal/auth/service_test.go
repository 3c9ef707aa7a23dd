package auth_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/alphagrips/academy-backend/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockUserRepository struct {
	users map[string]*auth.AccountRecord
}

func (m *mockUserRepository) GetActiveUserByEmail(email string) (*auth.AccountRecord, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (m *mockUserRepository) GetActiveUserByID(userID int64) (*auth.AccountRecord, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

var _ = Describe("AuthService", func() {
	var (
		svc  *auth.Service
		repo *mockUserRepository
	)

	BeforeEach(func() {
		hash, err := auth.HashPassword("correct-horse", bcrypt.MinCost)
		Expect(err).ToNot(HaveOccurred())

		repo = &mockUserRepository{users: map[string]*auth.AccountRecord{
			"coach@alphagrips.in": {
				ID: 1, Email: "coach@alphagrips.in", PasswordHash: hash,
				Role: "head_coach", AcademyID: 1, IsActive: true,
			},
		}}
		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		svc = auth.NewService(repo, tokenGen)
	})

	Describe("Authenticate", func() {
		It("returns tokens with the role and academy claims", func() {
			result, err := svc.Authenticate(auth.LoginDTO{Email: "coach@alphagrips.in", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())
			Expect(result.AccessToken).ToNot(BeEmpty())
			Expect(result.RefreshToken).ToNot(BeEmpty())
			Expect(result.Role).To(Equal("head_coach"))
			Expect(result.AcademyID).To(Equal(int64(1)))
		})

		It("issues an access token that validates back to the same user", func() {
			result, err := svc.Authenticate(auth.LoginDTO{Email: "coach@alphagrips.in", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			claims, err := svc.ValidateAccessToken(result.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(1)))
			Expect(claims.Role).To(Equal("head_coach"))
			Expect(claims.AcademyID).To(Equal(int64(1)))
		})

		It("rejects a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "coach@alphagrips.in", Password: "wrong"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error as a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "nobody@alphagrips.in", Password: "correct-horse"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects a missing email before touching the repository", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Password: "correct-horse"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RefreshTokens", func() {
		It("mints a fresh pair from a valid refresh token", func() {
			result, err := svc.Authenticate(auth.LoginDTO{Email: "coach@alphagrips.in", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			tokens, err := svc.RefreshTokens(result.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("refuses to refresh once the account disappears", func() {
			result, err := svc.Authenticate(auth.LoginDTO{Email: "coach@alphagrips.in", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			delete(repo.users, "coach@alphagrips.in")
			_, err = svc.RefreshTokens(result.RefreshToken)
			Expect(err).To(Equal(auth.ErrUserInactive))
		})

		It("rejects garbage tokens", func() {
			_, err := svc.RefreshTokens("not-a-jwt")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})
})
