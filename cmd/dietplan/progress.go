package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress renders pipeline status lines as an indeterminate bar.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a spinner-style bar writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Starting..."),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

// Update implements usecase.ProgressReporter.
func (p *Progress) Update(status string) {
	p.bar.Describe(fmt.Sprintf("[cyan]%s[reset]", status))
	_ = p.bar.Add(1)
}

// Clear erases the bar before results are printed.
func (p *Progress) Clear() {
	_ = p.bar.Clear()
}
