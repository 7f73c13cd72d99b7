package scanning

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cleanTranscript", func() {
	DescribeTable("stripping model decoration",
		func(input, expected string) {
			Expect(cleanTranscript(input)).To(Equal(expected))
		},
		Entry("plain text", "MIGROS\nTOPLAM 45,90", "MIGROS\nTOPLAM 45,90"),
		Entry("surrounding whitespace", "\n  MIGROS\n", "MIGROS"),
		Entry("fenced block", "```\nMIGROS\nTOPLAM 45,90\n```", "MIGROS\nTOPLAM 45,90"),
		Entry("fenced block with a language tag", "```text\nŞOK\n```", "ŞOK"),
		Entry("empty response", "   ", ""),
	)
})

var _ = Describe("describeLanguages", func() {
	DescribeTable("naming the hint",
		func(input, expected string) {
			Expect(describeLanguages(input)).To(Equal(expected))
		},
		Entry("Turkish and English", "tur+eng", "Turkish and English"),
		Entry("a single language", "tur", "Turkish"),
		Entry("three languages", "tur+eng+deu", "Turkish, English and German"),
		Entry("an unknown code", "tur+xyz", "Turkish and xyz"),
		Entry("an empty hint", "", "Turkish and English"),
	)
})

var _ = Describe("transcriptionPrompt", func() {
	It("names the expected languages", func() {
		Expect(transcriptionPrompt("tur+eng")).To(ContainSubstring("written in Turkish and English"))
	})
})
