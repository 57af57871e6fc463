package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClassifyLine", func() {
	var (
		line  string
		rules *Rules
		kind  LineKind
	)

	BeforeEach(func() {
		rules = DefaultRules()
	})

	JustBeforeEach(func() {
		kind = ClassifyLine(line, rules)
	})

	When("the line is empty", func() {
		BeforeEach(func() {
			line = ""
		})

		It("classifies as blank", func() {
			Expect(kind).To(Equal(LineBlank))
		})
	})

	When("the line contains a total-sum keyword", func() {
		BeforeEach(func() {
			line = "SUMME EUR 23.47"
		})

		It("classifies as total", func() {
			Expect(kind).To(Equal(LineTotal))
		})
	})

	When("the line contains both a total keyword and a tax marker", func() {
		BeforeEach(func() {
			line = "Zu zahlen 23.47 A"
		})

		It("prefers the total classification", func() {
			Expect(kind).To(Equal(LineTotal))
		})
	})

	When("the line ends in a tax marker", func() {
		BeforeEach(func() {
			line = "Milch 1.29 B"
		})

		It("classifies as item line", func() {
			Expect(kind).To(Equal(LineItem))
		})
	})

	When("the tax marker letter is embedded mid-line", func() {
		BeforeEach(func() {
			line = "A Klasse Eier"
		})

		It("does not classify as item line", func() {
			Expect(kind).To(Equal(LineFragment))
		})
	})

	When("the line is a plausible name fragment", func() {
		BeforeEach(func() {
			line = "Bio Vollmilch"
		})

		It("classifies as fragment", func() {
			Expect(kind).To(Equal(LineFragment))
		})
	})

	When("the line is boilerplate", func() {
		BeforeEach(func() {
			line = "Bahnhofstr. 12"
		})

		It("classifies as junk", func() {
			Expect(kind).To(Equal(LineJunk))
		})
	})
})

var _ = Describe("IsJunkLine", func() {
	var (
		line  string
		rules *Rules
		junk  bool
	)

	BeforeEach(func() {
		rules = DefaultRules()
	})

	JustBeforeEach(func() {
		junk = IsJunkLine(line, rules)
	})

	When("the line contains a junk keyword", func() {
		BeforeEach(func() {
			line = "Tel. 030 123456"
		})

		It("is junk", func() {
			Expect(junk).To(BeTrue())
		})
	})

	When("the line is exactly a store short name", func() {
		BeforeEach(func() {
			line = "REWE"
		})

		It("is junk", func() {
			Expect(junk).To(BeTrue())
		})
	})

	When("the line merely contains a store short name", func() {
		BeforeEach(func() {
			line = "REWE Bio Joghurt"
		})

		It("is not junk", func() {
			Expect(junk).To(BeFalse())
		})
	})

	When("the line matches an address-like number pattern", func() {
		BeforeEach(func() {
			line = "Halle 12-14"
		})

		It("is junk", func() {
			Expect(junk).To(BeTrue())
		})
	})

	When("the line starts with a five-digit postal code", func() {
		BeforeEach(func() {
			line = "10115 Berlin"
		})

		It("is junk", func() {
			Expect(junk).To(BeTrue())
		})
	})

	When("the line is deposit-related", func() {
		BeforeEach(func() {
			line = "Leergut 12-14"
		})

		It("is never junk, even with an address-like pattern", func() {
			Expect(junk).To(BeFalse())
		})
	})
})
