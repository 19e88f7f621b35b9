package pdf

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	readpdf "github.com/ledongthuc/pdf"
)

const dejaVuPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

func extractText(t *testing.T, path string) string {
	t.Helper()
	f, r, err := readpdf.Open(path)
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	defer func() { _ = f.Close() }()

	plain, err := r.GetPlainText()
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	return string(raw)
}

func TestExporter_ExportReproducesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diet_plan.pdf")
	exporter := NewExporter(path)

	got, err := exporter.Export("Breakfast: oats\nLunch: rice")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got != path {
		t.Fatalf("path = %q, want %q", got, path)
	}

	text := extractText(t, path)
	breakfast := strings.Index(text, "Breakfast: oats")
	lunch := strings.Index(text, "Lunch: rice")
	if breakfast < 0 || lunch < 0 {
		t.Fatalf("extracted text missing lines: %q", text)
	}
	if breakfast > lunch {
		t.Fatalf("lines out of order: %q", text)
	}
	if !strings.Contains(text, DefaultTitle) {
		t.Fatalf("extracted text missing title: %q", text)
	}
}

func TestExporter_ExportIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	exporter := NewExporter(path)
	text := "## Groq Diet Plan\n\nPlan A\n\n## Gemini Diet Plan\n\nPlan B"

	if _, err := exporter.Export(text); err != nil {
		t.Fatalf("first Export() error = %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := exporter.Export(text); err != nil {
		t.Fatalf("second Export() error = %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) == 0 {
		t.Fatal("exported file is empty")
	}
	if !bytes.Equal(first, second) {
		t.Fatal("exports of identical text differ")
	}
}

func TestExporter_OverwritesPreviousDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	exporter := NewExporter(path)

	if _, err := exporter.Export("Dinner: soup"); err != nil {
		t.Fatal(err)
	}
	if _, err := exporter.Export("Dinner: salad"); err != nil {
		t.Fatal(err)
	}
	text := extractText(t, path)
	if strings.Contains(text, "soup") || !strings.Contains(text, "salad") {
		t.Fatalf("file not overwritten: %q", text)
	}
}

func TestExporter_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "plan.pdf")
	if _, err := NewExporter(path).Export("x"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}

func TestExporter_FilesystemFailure(t *testing.T) {
	dir := t.TempDir()
	// The destination is an existing directory, so the write must fail.
	if _, err := NewExporter(dir).Export("x"); err == nil {
		t.Fatal("expected filesystem error")
	}
}

func TestExporter_FallbackSubstitutesUnsupportedRunes(t *testing.T) {
	exporter := NewExporter(filepath.Join(t.TempDir(), "plan.pdf"))
	if exporter.UTF8() {
		t.Fatal("default exporter should use the core font fallback")
	}
	if _, err := exporter.Export("Café 🥑 smoothie"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	text := extractText(t, exporter.Path())
	if !strings.Contains(text, "smoothie") {
		t.Fatalf("extracted text = %q", text)
	}
}

func TestToWindows1252(t *testing.T) {
	got := toWindows1252("Café 🥑\nnaïve – ok")
	want := "Caf\xe9 ?\nna\xefve \x96 ok"
	if got != want {
		t.Fatalf("toWindows1252() = %q, want %q", got, want)
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("a\r\nb\rc\td"); got != "a\nb\nc    d" {
		t.Fatalf("normalizeText() = %q", got)
	}
}

func TestExporter_UTF8Font(t *testing.T) {
	if _, err := os.Stat(dejaVuPath); err != nil {
		t.Skip("DejaVuSans.ttf not installed")
	}
	font, err := LoadFont("DejaVu", dejaVuPath)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "plan.pdf")
	exporter := NewExporter(path, WithUTF8Font(font), WithTitle("Plan"))
	if !exporter.UTF8() {
		t.Fatal("exporter should report UTF-8 font")
	}
	if _, err := exporter.Export("Frühstück: Haferflocken"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty file, err = %v", err)
	}
}

func loadDejaVu(t *testing.T) Font {
	t.Helper()
	if _, err := os.Stat(dejaVuPath); err != nil {
		t.Skip("DejaVuSans.ttf not installed")
	}
	font, err := LoadFont("DejaVu", dejaVuPath)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	return font
}

func TestExporter_UTF8FontSubstitutesMissingGlyphs(t *testing.T) {
	exporter := NewExporter(filepath.Join(t.TempDir(), "plan.pdf"), WithUTF8Font(loadDejaVu(t)))

	for _, text := range []string{"Breakfast 🥑 oats", "Lunch: 寿司", "Hydration 💧\nDinner: soup"} {
		if _, err := exporter.Export(text); err != nil {
			t.Fatalf("Export(%q) error = %v", text, err)
		}
	}
}

func TestExporter_ToFontGlyphs(t *testing.T) {
	exporter := NewExporter("", WithUTF8Font(loadDejaVu(t)))

	tests := []struct {
		in   string
		want string
	}{
		{in: "Breakfast 🥑 oats", want: "Breakfast ? oats"},
		{in: "Lunch: 寿司", want: "Lunch: ??"},
		{in: "Frühstück\nÄpfel", want: "Frühstück\nÄpfel"},
	}
	for _, tt := range tests {
		if got := exporter.toFontGlyphs(tt.in); got != tt.want {
			t.Fatalf("toFontGlyphs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithUTF8Font_IgnoresUnparsableData(t *testing.T) {
	if NewExporter("", WithUTF8Font(Font{Family: "x", Data: []byte("not a font")})).UTF8() {
		t.Fatal("unparsable font should be ignored")
	}
}

func TestLoadFont_Missing(t *testing.T) {
	if _, err := LoadFont("x", filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatal("expected error for missing font")
	}
}

func TestWithUTF8Font_IgnoresEmpty(t *testing.T) {
	if NewExporter("", WithUTF8Font(Font{Family: "x"})).UTF8() {
		t.Fatal("font without data should be ignored")
	}
	if got := NewExporter("").Path(); got != DefaultPath {
		t.Fatalf("Path() = %q, want %q", got, DefaultPath)
	}
}
