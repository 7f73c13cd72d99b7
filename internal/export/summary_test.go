package export

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
)

var _ = Describe("Summarize", func() {
	var (
		receipts []*extraction.Receipt
		summary  Summary
	)

	JustBeforeEach(func() {
		summary = Summarize(receipts)
	})

	When("receipts span several categories", func() {
		BeforeEach(func() {
			receipts = []*extraction.Receipt{
				sampleReceipt(4, "ECZANE", "25", 10, extraction.CategoryHealth),
				sampleReceipt(3, "ZARA", "150", 20, extraction.CategoryClothing),
				sampleReceipt(2, "MIGROS", "75", 8, extraction.CategoryMarket),
			}
		})

		It("totals everything", func() {
			Expect(summary.ReceiptCount).To(Equal(3))
			Expect(summary.Total.StringFixed(2)).To(Equal("250.00"))
			Expect(summary.VATTotal.StringFixed(2)).To(Equal("38.50"))
		})

		It("lists categories in priority order", func() {
			var order []extraction.Category
			for _, c := range summary.Categories {
				order = append(order, c.Category)
			}
			Expect(order).To(Equal([]extraction.Category{
				extraction.CategoryMarket,
				extraction.CategoryClothing,
				extraction.CategoryHealth,
			}))
		})

		It("computes each category's share", func() {
			Expect(summary.Categories[0].Share.StringFixed(2)).To(Equal("30.00"))
			Expect(summary.Categories[1].Share.StringFixed(2)).To(Equal("60.00"))
			Expect(summary.Categories[2].Share.StringFixed(2)).To(Equal("10.00"))
		})
	})

	When("all receipts are zero", func() {
		BeforeEach(func() {
			receipts = []*extraction.Receipt{
				sampleReceipt(1, "Bilinmeyen Fiş", "0", 20, extraction.CategoryOther),
			}
		})

		It("reports a zero share", func() {
			Expect(summary.Categories).To(HaveLen(1))
			Expect(summary.Categories[0].Share.IsZero()).To(BeTrue())
		})
	})

	When("there are no receipts", func() {
		BeforeEach(func() {
			receipts = nil
		})

		It("returns an empty summary", func() {
			Expect(summary.ReceiptCount).To(BeZero())
			Expect(summary.Total.IsZero()).To(BeTrue())
			Expect(summary.Categories).To(BeEmpty())
		})
	})
})
