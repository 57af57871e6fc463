package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractHeader", func() {
	var (
		fullText string
		rules    *Rules
		header   Header
	)

	BeforeEach(func() {
		rules = DefaultRules()
	})

	JustBeforeEach(func() {
		header = ExtractHeader(fullText, rules)
	})

	When("the document names a known store with date and time", func() {
		BeforeEach(func() {
			fullText = "REWE Markt GmbH\nDanke für Ihren Einkauf\n24.03.25 14:32 Bon-Nr. 4711\n"
		})

		It("canonicalizes the store name to uppercase", func() {
			Expect(header.StoreName).To(Equal("REWE"))
		})

		It("expands the two-digit year", func() {
			Expect(header.Date).To(Equal("20250324"))
		})

		It("extracts the time without the colon", func() {
			Expect(header.Time).To(Equal("1432"))
		})

		It("derives the receipt ID from date, time and store", func() {
			Expect(header.ReceiptID).To(Equal("20250324_1432_REWE"))
		})

		It("initializes the total to zero", func() {
			Expect(header.TotalSum).To(Equal("0.00"))
		})
	})

	When("the date has a four-digit year", func() {
		BeforeEach(func() {
			fullText = "EDEKA\n01.12.2024\n"
		})

		It("keeps the year as-is", func() {
			Expect(header.Date).To(Equal("20241201"))
		})
	})

	When("several known stores appear", func() {
		BeforeEach(func() {
			fullText = "Ihr Rewe Team - Preise wie bei Lidl\n"
		})

		It("picks the first match in configured order", func() {
			Expect(header.StoreName).To(Equal("LIDL"))
		})
	})

	When("nothing recognizable is in the text", func() {
		BeforeEach(func() {
			fullText = "unleserlicher Scan\n"
		})

		It("falls back to sentinel values", func() {
			Expect(header.StoreName).To(Equal("UNKNOWN"))
			Expect(header.Date).To(Equal("00000000"))
			Expect(header.Time).To(Equal("0000"))
			Expect(header.ReceiptID).To(Equal("00000000_0000_UNKNOWN"))
		})
	})
})
