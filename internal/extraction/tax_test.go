package extraction

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractVATRate", func() {
	var (
		raw   string
		rate  int
		found bool
	)

	JustBeforeEach(func() {
		rate, found = ExtractVATRate(raw)
	})

	When("a KDV label carries the rate", func() {
		BeforeEach(func() {
			raw = "SUT 100,00\nKDV %8"
		})

		It("returns the labeled rate", func() {
			Expect(found).To(BeTrue())
			Expect(rate).To(Equal(8))
		})
	})

	When("the label reads KDV TOPLAM", func() {
		BeforeEach(func() {
			raw = "%1 INDIRIM\nkdv toplam %10"
		})

		It("prefers the label over an earlier bare percent", func() {
			Expect(rate).To(Equal(10))
		})
	})

	When("only a bare percent token is present", func() {
		BeforeEach(func() {
			raw = "ISKONTO\n%18 ORANLI"
		})

		It("returns the bare rate", func() {
			Expect(found).To(BeTrue())
			Expect(rate).To(Equal(18))
		})
	})

	When("no VAT token is present", func() {
		BeforeEach(func() {
			raw = "TOPLAM 100,00"
		})

		It("reports nothing found", func() {
			Expect(found).To(BeFalse())
		})
	})
})

var _ = Describe("VATAmount", func() {
	It("computes the share at the given rate", func() {
		Expect(VATAmount(decimal.NewFromInt(100), 8).StringFixed(2)).To(Equal("8.00"))
	})

	It("rounds to two decimal places", func() {
		Expect(VATAmount(decimal.RequireFromString("45.90"), 8).String()).To(Equal("3.67"))
	})

	It("is zero for a zero amount", func() {
		Expect(VATAmount(decimal.Zero, 20).IsZero()).To(BeTrue())
	})
})
