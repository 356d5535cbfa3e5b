package parse

import (
	"strings"
	"testing"
)

func TestCleanForSpeechStripsMarkup(t *testing.T) {
	raw := "1. THE CORE PRINCIPLE\nMass attracts *mass*.\n" +
		"4. CONCEPT MAP\n```mermaid\ngraph TD\n  A --> B\n```\n" +
		"DEEP_LEARNING_TOPICS Gravity, Orbits"

	clean := CleanForSpeech(raw)

	for _, forbidden := range []string{"THE CORE PRINCIPLE", "graph TD", "mermaid", TopicMarker, "*", "`"} {
		if strings.Contains(clean, forbidden) {
			t.Errorf("clean text contains %q: %q", forbidden, clean)
		}
	}
	if !strings.Contains(clean, "Mass attracts mass.") {
		t.Errorf("prose lost: %q", clean)
	}
}

func TestCleanForSpeechStripsDiagramWithoutHeaders(t *testing.T) {
	raw := "Here is the flow:\n```mermaid\ngraph TD\n  A --> B\n```\nThat is all."

	clean := CleanForSpeech(raw)

	for _, forbidden := range []string{"mermaid", "graph TD", "A --> B"} {
		if strings.Contains(clean, forbidden) {
			t.Errorf("clean text contains %q: %q", forbidden, clean)
		}
	}
	for _, want := range []string{"Here is the flow:", "That is all."} {
		if !strings.Contains(clean, want) {
			t.Errorf("prose %q lost: %q", want, clean)
		}
	}
}

func TestCleanForSpeechStripsBareDiagramBlock(t *testing.T) {
	raw := "The shape of it:\n\nflowchart LR\n  Q --> A"

	clean := CleanForSpeech(raw)

	if strings.Contains(clean, "flowchart") || strings.Contains(clean, "Q --> A") {
		t.Errorf("diagram leaked into speech text: %q", clean)
	}
	if !strings.Contains(clean, "The shape of it:") {
		t.Errorf("prose lost: %q", clean)
	}
}

func TestCleanForSpeechPlainText(t *testing.T) {
	raw := "Hello! Ready when you are."
	if got := CleanForSpeech(raw); got != raw {
		t.Errorf("clean = %q, want unchanged", got)
	}
}

func TestCleanForSpeechEmpty(t *testing.T) {
	if got := CleanForSpeech("DEEP_LEARNING_TOPICS A, B"); got != "" {
		t.Errorf("clean = %q, want empty", got)
	}
}
