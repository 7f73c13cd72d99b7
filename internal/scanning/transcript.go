package scanning

import (
	"fmt"
	"strings"
)

var languageNames = map[string]string{
	"tur": "Turkish",
	"eng": "English",
	"deu": "German",
	"fra": "French",
	"ara": "Arabic",
	"rus": "Russian",
}

// describeLanguages turns "tur+eng" into "Turkish and English". Unknown
// codes are passed through as written.
func describeLanguages(languages string) string {
	var names []string
	for _, code := range strings.Split(languages, "+") {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if name, ok := languageNames[code]; ok {
			names = append(names, name)
		} else {
			names = append(names, code)
		}
	}

	switch len(names) {
	case 0:
		return describeLanguages(DefaultLanguages)
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// transcriptionPrompt is the shared prompt used by all LLM providers.
func transcriptionPrompt(languages string) string {
	return fmt.Sprintf(`You are an OCR engine reading a photographed shop receipt. The receipt is written in %s.

Transcribe every piece of printed text exactly as it appears, top to bottom:
- Keep one output line per printed line, in the original order.
- Copy numbers, commas, dots, percent signs and currency symbols exactly. Do not reformat amounts.
- Keep the original spelling and casing, including Turkish letters such as Ş, Ğ, İ, ı, Ç, Ö, Ü.
- Do not summarize, translate, correct or explain anything.
- Do not use markdown code blocks.
- If the image contains no readable text, return an empty response.`, describeLanguages(languages))
}

// cleanTranscript strips the code fences some models wrap around their
// answer even when asked not to.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
