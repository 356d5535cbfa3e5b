package parse

import "strings"

// CleanForSpeech strips everything non-speakable from raw response text:
// diagram source blocks, the trailing topic marker and payload, section
// header lines, and leftover markup characters. The result may be empty.
func CleanForSpeech(raw string) string {
	parsed := ParseSections(raw)

	var parts []string
	for _, sec := range parsed.Sections {
		// Diagram fragments are not limited to the concept-map section;
		// none of them are speakable wherever they appear.
		body := sec.Body
		for {
			source, rest := extractDiagram(body)
			if source == "" {
				break
			}
			body = rest
		}
		if body != "" {
			parts = append(parts, body)
		}
	}
	text := strings.Join(parts, "\n\n")

	text = strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '`':
			return -1
		}
		return r
	}, text)

	return strings.TrimSpace(text)
}
