package mainview

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render(Props{Width: 60, Title: "Your details", Body: "Age  25", Note: "Groq, Gemini"})

	title := strings.Index(got, "Your details")
	body := strings.Index(got, "Age  25")
	note := strings.Index(got, "Groq, Gemini")
	if title < 0 || body < 0 || note < 0 {
		t.Fatalf("missing parts in %q", got)
	}
	if title > body || body > note {
		t.Fatalf("parts out of order: %q", got)
	}
}

func TestRender_SkipsEmptyParts(t *testing.T) {
	got := Render(Props{Body: "Oats"})
	if strings.TrimSpace(got) != "Oats" {
		t.Fatalf("Render() = %q, want only the body", got)
	}
}
