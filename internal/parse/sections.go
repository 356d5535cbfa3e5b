// Package parse splits raw model responses into typed sections, follow-up
// topics and an embedded diagram fragment. Parsing is total: any input
// yields a valid result, and parsing the same string twice yields identical
// results.
package parse

import "strings"

// Section is a labeled or unlabeled contiguous span of response text.
type Section struct {
	Label string
	Body  string
}

// Parsed is a derived view over a message's raw content. It is recomputed
// on every render and never stored.
type Parsed struct {
	Sections      []Section
	Topics        []string
	DiagramSource string
}

// TopicMarker introduces the trailing comma-separated follow-up topic list.
const TopicMarker = "DEEP_LEARNING_TOPICS"

// conceptMapLabel is the section whose body may embed a diagram fragment.
const conceptMapLabel = "CONCEPT MAP"

// headers maps the whitespace-normalized header line to its label.
var headers = map[string]string{
	"1. THE CORE PRINCIPLE":     "THE CORE PRINCIPLE",
	"2. MENTAL MODEL (ANALOGY)": "MENTAL MODEL (ANALOGY)",
	"3. THE DIRECT ANSWER":      "THE DIRECT ANSWER",
	"4. CONCEPT MAP":            conceptMapLabel,
}

// diagramKeywords are the graph-declaration tokens that open a bare
// diagram block inside the concept-map section.
var diagramKeywords = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"stateDiagram-v2",
	"stateDiagram",
	"classDiagram",
	"erDiagram",
	"journey",
	"mindmap",
	"pie",
}

// headerLabel returns the section label if line is a recognized header.
// Matching tolerates extra whitespace but is exact on ordinal and label.
func headerLabel(line string) (string, bool) {
	normalized := strings.Join(strings.Fields(line), " ")
	label, ok := headers[normalized]
	return label, ok
}

// ParseSections splits raw response text into ordered sections, extracts
// the trailing topic list and isolates the diagram fragment from the
// concept-map section. It never fails; missing structure degrades to a
// single unlabeled section.
func ParseSections(raw string) Parsed {
	body, topics := splitTopics(raw)

	var parsed Parsed
	parsed.Topics = topics

	// Two states: before the first recognized header the accumulated lines
	// form an unlabeled leading section; afterwards they belong to the
	// section the last header opened.
	type parseState int
	const (
		beforeFirstHeader parseState = iota
		inSection
	)

	state := beforeFirstHeader
	current := Section{}
	var lines []string

	flush := func() {
		current.Body = strings.TrimSpace(strings.Join(lines, "\n"))
		// An empty unlabeled prologue is dropped; labeled sections are
		// kept even when their body is empty.
		if state == inSection || current.Body != "" {
			parsed.Sections = append(parsed.Sections, current)
		}
		lines = nil
	}

	for _, line := range strings.Split(body, "\n") {
		if label, ok := headerLabel(line); ok {
			flush()
			state = inSection
			current = Section{Label: label}
			continue
		}
		lines = append(lines, line)
	}
	flush()

	for i := range parsed.Sections {
		if parsed.Sections[i].Label != conceptMapLabel {
			continue
		}
		source, remainder := extractDiagram(parsed.Sections[i].Body)
		if source != "" {
			parsed.DiagramSource = source
			parsed.Sections[i].Body = remainder
		}
	}

	return parsed
}

// splitTopics detects the trailing topic marker, strips it and its payload
// from the text and returns the comma-separated entries. The marker only
// counts when nothing but its payload follows it; a mid-text occurrence is
// ordinary prose. An absent marker yields the text untouched and no topics.
func splitTopics(raw string) (string, []string) {
	idx := strings.LastIndex(raw, TopicMarker)
	if idx < 0 {
		return raw, nil
	}

	tail := raw[idx+len(TopicMarker):]
	if nl := strings.IndexByte(tail, '\n'); nl >= 0 && strings.TrimSpace(tail[nl:]) != "" {
		return raw, nil
	}

	payload := strings.TrimSpace(tail)
	payload = strings.TrimPrefix(payload, ":")
	payload = strings.TrimSuffix(strings.TrimSpace(payload), "]")

	var topics []string
	for _, entry := range strings.Split(payload, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			topics = append(topics, entry)
		}
	}

	body := strings.TrimRight(raw[:idx], " \t\n[")
	return body, topics
}

// extractDiagram isolates a diagram fragment from a concept-map body:
// either a fenced mermaid block or a trailing block whose first non-blank
// line starts with a graph-declaration keyword.
func extractDiagram(body string) (source, remainder string) {
	if start := strings.Index(body, "```mermaid"); start >= 0 {
		inner := body[start+len("```mermaid"):]
		end := strings.Index(inner, "```")
		if end < 0 {
			end = len(inner)
		}
		source = strings.TrimSpace(inner[:end])
		rest := body[:start]
		if end < len(inner) {
			rest += inner[end+3:]
		}
		return source, strings.TrimSpace(rest)
	}

	// A bare fragment must open its own block: the keyword line is either
	// the first non-blank line of the body or preceded by a blank line.
	lines := strings.Split(body, "\n")
	blockStart := true
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blockStart = true
			continue
		}
		if blockStart && isDiagramStart(trimmed) {
			source = strings.TrimSpace(strings.Join(lines[i:], "\n"))
			remainder = strings.TrimSpace(strings.Join(lines[:i], "\n"))
			return source, remainder
		}
		blockStart = false
	}
	return "", body
}

func isDiagramStart(line string) bool {
	word := line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		word = line[:i]
	}
	for _, kw := range diagramKeywords {
		if word == kw {
			return true
		}
	}
	return false
}
