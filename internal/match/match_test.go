package match_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alphagrips/academy-backend/internal/match"
)

func TestMatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Match Suite")
}

var _ = Describe("SplitScore", func() {
	It("splits a plain score on the dash", func() {
		p1, p2 := match.SplitScore("21-15")
		Expect(p1).To(Equal("21"))
		Expect(p2).To(Equal("15"))
	})

	It("splits only on the first dash", func() {
		p1, p2 := match.SplitScore("21-15, 19-21")
		Expect(p1).To(Equal("21"))
		Expect(p2).To(Equal("15, 19-21"))
	})

	It("trims whitespace around the halves", func() {
		p1, p2 := match.SplitScore("21 - 15")
		Expect(p1).To(Equal("21"))
		Expect(p2).To(Equal("15"))
	})

	It("shows an unsplittable score verbatim on both sides", func() {
		p1, p2 := match.SplitScore("walkover")
		Expect(p1).To(Equal("walkover"))
		Expect(p2).To(Equal("walkover"))
	})
})

var _ = Describe("CreateMatchDTO", func() {
	var dto *match.CreateMatchDTO

	BeforeEach(func() {
		dto = &match.CreateMatchDTO{
			Player1ID: 1,
			Player2ID: 2,
			MatchDate: time.Now().AddDate(0, 0, -1),
			ScoreRaw:  "21-15",
		}
	})

	It("accepts a complete match", func() {
		Expect(dto.Validate()).To(Succeed())
	})

	It("rejects a player facing themselves", func() {
		dto.Player2ID = dto.Player1ID
		Expect(dto.Validate()).To(HaveOccurred())
	})

	It("rejects a future match date", func() {
		dto.MatchDate = time.Now().AddDate(0, 0, 2)
		Expect(dto.Validate()).To(HaveOccurred())
	})

	It("rejects an empty score", func() {
		dto.ScoreRaw = ""
		Expect(dto.Validate()).To(HaveOccurred())
	})
})
