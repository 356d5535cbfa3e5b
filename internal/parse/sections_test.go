package parse

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseSectionsNoMarkers(t *testing.T) {
	raw := "Hello! I'm your tutor.\n\nAsk me anything."
	parsed := ParseSections(raw)

	if len(parsed.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(parsed.Sections))
	}
	if parsed.Sections[0].Label != "" {
		t.Errorf("label = %q, want unlabeled", parsed.Sections[0].Label)
	}
	if parsed.Sections[0].Body != raw {
		t.Errorf("body = %q, want full text", parsed.Sections[0].Body)
	}
	if len(parsed.Topics) != 0 {
		t.Errorf("topics = %v, want empty", parsed.Topics)
	}
}

func TestParseSectionsLabeledWithTopics(t *testing.T) {
	raw := "1. THE CORE PRINCIPLE\nfoo\n2. MENTAL MODEL (ANALOGY)\nbar\nDEEP_LEARNING_TOPICS A, B, C"
	parsed := ParseSections(raw)

	if len(parsed.Sections) != 2 {
		t.Fatalf("sections = %d, want 2: %+v", len(parsed.Sections), parsed.Sections)
	}
	if parsed.Sections[0].Label != "THE CORE PRINCIPLE" || parsed.Sections[0].Body != "foo" {
		t.Errorf("section 0 = %+v", parsed.Sections[0])
	}
	if parsed.Sections[1].Label != "MENTAL MODEL (ANALOGY)" || parsed.Sections[1].Body != "bar" {
		t.Errorf("section 1 = %+v", parsed.Sections[1])
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(parsed.Topics, want) {
		t.Errorf("topics = %v, want %v", parsed.Topics, want)
	}
}

func TestParseSectionsLeadingProse(t *testing.T) {
	raw := "Let's explore gravity.\n\n1. THE CORE PRINCIPLE\nMass attracts mass."
	parsed := ParseSections(raw)

	if len(parsed.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(parsed.Sections))
	}
	if parsed.Sections[0].Label != "" || parsed.Sections[0].Body != "Let's explore gravity." {
		t.Errorf("leading section = %+v", parsed.Sections[0])
	}
	if parsed.Sections[1].Body != "Mass attracts mass." {
		t.Errorf("section body = %q", parsed.Sections[1].Body)
	}
}

func TestParseSectionsHeaderWhitespaceTolerance(t *testing.T) {
	raw := "  1.   THE CORE PRINCIPLE  \nbody text"
	parsed := ParseSections(raw)

	if len(parsed.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(parsed.Sections))
	}
	if parsed.Sections[0].Label != "THE CORE PRINCIPLE" {
		t.Errorf("label = %q", parsed.Sections[0].Label)
	}
	if parsed.Sections[0].Body != "body text" {
		t.Errorf("body = %q, header leaked", parsed.Sections[0].Body)
	}
}

func TestParseSectionsUnknownHeaderIsBody(t *testing.T) {
	raw := "5. SOMETHING ELSE\ntext"
	parsed := ParseSections(raw)

	if len(parsed.Sections) != 1 || parsed.Sections[0].Label != "" {
		t.Fatalf("parsed = %+v, want single unlabeled section", parsed.Sections)
	}
}

func TestParseSectionsFencedDiagram(t *testing.T) {
	raw := "4. CONCEPT MAP\nHere is the flow.\n```mermaid\ngraph TD\n  A --> B\n```\nDone."
	parsed := ParseSections(raw)

	if parsed.DiagramSource != "graph TD\n  A --> B" {
		t.Errorf("diagram = %q", parsed.DiagramSource)
	}
	body := parsed.Sections[0].Body
	if body != "Here is the flow.\n\nDone." {
		t.Errorf("body = %q, fence residue left", body)
	}
}

func TestParseSectionsBareDiagram(t *testing.T) {
	raw := "4. CONCEPT MAP\nThe process:\n\nflowchart LR\n  Start --> End"
	parsed := ParseSections(raw)

	if parsed.DiagramSource != "flowchart LR\n  Start --> End" {
		t.Errorf("diagram = %q", parsed.DiagramSource)
	}
	if parsed.Sections[0].Body != "The process:" {
		t.Errorf("body = %q", parsed.Sections[0].Body)
	}
}

func TestParseSectionsProseMentioningPieIsNotDiagram(t *testing.T) {
	raw := "4. CONCEPT MAP\nImagine a pie chart here.\npie slices shrink over time."
	parsed := ParseSections(raw)

	if parsed.DiagramSource != "" {
		t.Errorf("diagram = %q, want none for mid-paragraph keyword", parsed.DiagramSource)
	}
}

func TestParseSectionsTopicMarkerVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"bare", "text\nDEEP_LEARNING_TOPICS A, B", []string{"A", "B"}},
		{"colon", "text\nDEEP_LEARNING_TOPICS: A , B ", []string{"A", "B"}},
		{"bracketed", "text\n[DEEP_LEARNING_TOPICS: A, B]", []string{"A", "B"}},
		{"empty payload", "text\nDEEP_LEARNING_TOPICS", nil},
		{"absent", "plain text", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseSections(tt.raw)
			if !reflect.DeepEqual(parsed.Topics, tt.want) {
				t.Errorf("topics = %v, want %v", parsed.Topics, tt.want)
			}
			for _, sec := range parsed.Sections {
				if strings.Contains(sec.Body, TopicMarker) {
					t.Errorf("topic marker leaked into body %q", sec.Body)
				}
			}
		})
	}
}

func TestParseSectionsMidTextMarkerIsProse(t *testing.T) {
	raw := "The DEEP_LEARNING_TOPICS list comes last.\n\nSo nothing here is a topic."
	parsed := ParseSections(raw)

	if len(parsed.Topics) != 0 {
		t.Errorf("topics = %v, want none for mid-text marker", parsed.Topics)
	}
	if len(parsed.Sections) != 1 || parsed.Sections[0].Body != raw {
		t.Errorf("body altered: %+v", parsed.Sections)
	}
}

func TestParseSectionsMarkerOnFinalLine(t *testing.T) {
	raw := "text\nDEEP_LEARNING_TOPICS: A, B\n\n"
	parsed := ParseSections(raw)

	if want := []string{"A", "B"}; !reflect.DeepEqual(parsed.Topics, want) {
		t.Errorf("topics = %v, want %v", parsed.Topics, want)
	}
}

func TestParseSectionsIdempotent(t *testing.T) {
	raw := "intro\n1. THE CORE PRINCIPLE\nfoo\n4. CONCEPT MAP\ngraph TD\n  A-->B\nDEEP_LEARNING_TOPICS X, Y"
	first := ParseSections(raw)
	second := ParseSections(raw)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestParseSectionsEmptyInput(t *testing.T) {
	parsed := ParseSections("")
	if len(parsed.Sections) != 0 || len(parsed.Topics) != 0 || parsed.DiagramSource != "" {
		t.Fatalf("parsed = %+v, want zero value", parsed)
	}
}
