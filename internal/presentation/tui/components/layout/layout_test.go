package layout

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	props := Props{
		Header: "HEADER",
		Main:   "MAIN",
		Footer: "FOOTER",
	}

	got := Render(props)

	if !strings.Contains(got, "HEADER") {
		t.Error("Missing header content")
	}
	if !strings.Contains(got, "MAIN") {
		t.Error("Missing main content")
	}
	if !strings.Contains(got, "FOOTER") {
		t.Error("Missing footer content")
	}
	if strings.Index(got, "HEADER") > strings.Index(got, "MAIN") || strings.Index(got, "MAIN") > strings.Index(got, "FOOTER") {
		t.Errorf("parts out of order: %q", got)
	}
}

func TestRender_SkipsEmpty(t *testing.T) {
	got := Render(Props{Main: "MAIN"})
	if strings.TrimSpace(got) != "MAIN" {
		t.Fatalf("Render() = %q", got)
	}
}
