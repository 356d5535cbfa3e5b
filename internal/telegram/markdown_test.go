package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShort(t *testing.T) {
	parts := SplitMessage("hello", 10)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Errorf("parts = %v", parts)
	}
}

func TestSplitMessagePrefersNewline(t *testing.T) {
	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 10)

	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if !strings.HasSuffix(parts[0], "\n") {
		t.Errorf("first part does not end at newline: %q", parts[0])
	}
	if parts[1] != strings.Repeat("b", 8) {
		t.Errorf("second part = %q", parts[1])
	}
}

func TestSplitMessageHardBreak(t *testing.T) {
	text := strings.Repeat("x", 25)
	parts := SplitMessage(text, 10)

	if len(parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(parts))
	}
	for _, p := range parts {
		if utf8.RuneCountInString(p) > 10 {
			t.Errorf("part exceeds limit: %d runes", utf8.RuneCountInString(p))
		}
	}
}

func TestSplitMessageMultibyte(t *testing.T) {
	text := strings.Repeat("ё", 15)
	parts := SplitMessage(text, 10)

	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if utf8.RuneCountInString(parts[0]) != 10 {
		t.Errorf("first part = %d runes, want 10", utf8.RuneCountInString(parts[0]))
	}
}

func TestFixMarkdownDanglingFence(t *testing.T) {
	got := FixMarkdown("text ```go\ncode")
	if strings.Count(got, "```")%2 != 0 {
		t.Errorf("fence not closed: %q", got)
	}
}

func TestFixMarkdownDanglingInlineCode(t *testing.T) {
	got := FixMarkdown("see `foo")
	if strings.Count(got, "`")%2 != 0 {
		t.Errorf("inline code not closed: %q", got)
	}
}

func TestFixMarkdownBalancedUnchanged(t *testing.T) {
	in := "plain `code` and ```\nfence\n```"
	if got := FixMarkdown(in); got != in {
		t.Errorf("FixMarkdown(%q) = %q", in, got)
	}
}
