// Package pdf renders plain text documents into paginated PDF files.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
)

const (
	DefaultPath  = "diet_plan.pdf"
	DefaultTitle = "AI-Generated Diet Plan"

	coreFamily      = "Helvetica"
	titleSize       = 16
	bodySize        = 12
	lineHeight      = 10
	replacementByte = '?'

	// fpdf indexes UTF-8 glyphs with 16-bit code points.
	maxFontRune = 0xFFFF
)

// Stamped into every file so identical text produces identical bytes.
var fixedDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Font is a TrueType font able to render the full Unicode range of the input.
type Font struct {
	Family string
	Data   []byte
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithUTF8Font renders text with the given TrueType font instead of the core font fallback.
// Fonts that cannot be parsed are ignored.
func WithUTF8Font(font Font) Option {
	return func(e *Exporter) {
		if font.Family == "" || len(font.Data) == 0 {
			return
		}
		glyphs, err := sfnt.Parse(font.Data)
		if err != nil {
			return
		}
		e.font = &font
		e.glyphs = glyphs
	}
}

// WithTitle overrides the page header title.
func WithTitle(title string) Option {
	return func(e *Exporter) {
		if strings.TrimSpace(title) != "" {
			e.title = title
		}
	}
}

// Exporter writes documents to one fixed destination path.
//
// Without a UTF-8 font the core Helvetica font is used and runes outside
// Windows-1252 are replaced with '?'. With one, runes the font has no glyph
// for are replaced instead.
type Exporter struct {
	mu     sync.Mutex
	path   string
	title  string
	font   *Font
	glyphs *sfnt.Font
}

// NewExporter creates an exporter writing to path (DefaultPath when empty).
func NewExporter(path string, opts ...Option) *Exporter {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	e := &Exporter{path: path, title: DefaultTitle}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadFont reads a TrueType file for WithUTF8Font.
func LoadFont(family, path string) (Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Font{}, fmt.Errorf("failed to read font: %w", err)
	}
	return Font{Family: family, Data: data}, nil
}

// Path returns the destination file path.
func (e *Exporter) Path() string {
	return e.path
}

// UTF8 reports whether a Unicode font is configured.
func (e *Exporter) UTF8() bool {
	return e.font != nil
}

// Export renders text and overwrites the destination file, returning its path.
func (e *Exporter) Export(text string) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, text); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(e.path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}
	return e.path, nil
}

// Render writes the PDF for text to w without touching the filesystem.
func (e *Exporter) Render(w io.Writer, text string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCatalogSort(true)
	doc.SetCreationDate(fixedDate)
	doc.SetModificationDate(fixedDate)
	doc.SetTitle(e.title, e.font != nil)

	family, encode := coreFamily, toWindows1252
	if e.font != nil {
		family, encode = e.font.Family, e.toFontGlyphs
		doc.AddUTF8FontFromBytes(family, "", e.font.Data)
		doc.AddUTF8FontFromBytes(family, "B", e.font.Data)
	}

	title := encode(e.title)
	doc.SetHeaderFunc(func() {
		doc.SetFont(family, "B", titleSize)
		doc.CellFormat(0, lineHeight, title, "", 1, "C", false, 0, "")
		doc.Ln(lineHeight)
	})

	doc.AddPage()
	doc.SetFont(family, "", bodySize)
	doc.MultiCell(0, lineHeight, encode(normalizeText(text)), "", "L", false)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\t", "    ")
}

// toFontGlyphs keeps the runes the UTF-8 font can draw and substitutes the rest.
func (e *Exporter) toFontGlyphs(s string) string {
	var (
		b   strings.Builder
		buf sfnt.Buffer
	)
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == ' ' {
			b.WriteRune(r)
			continue
		}
		if r > maxFontRune {
			b.WriteByte(replacementByte)
			continue
		}
		idx, err := e.glyphs.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			b.WriteByte(replacementByte)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// toWindows1252 maps text onto the core font encoding, substituting unsupported runes.
func toWindows1252(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = replacementByte
		}
		b.WriteByte(c)
	}
	return b.String()
}
