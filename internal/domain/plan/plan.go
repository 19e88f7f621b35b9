// Package plan defines provider results and the merged diet plan document.
package plan

import (
	"errors"
	"fmt"
	"strings"
)

// MergePolicy decides how provider failures are handled when several providers are queried.
type MergePolicy string

const (
	// PolicyInline embeds a failed provider's error text in its own section.
	PolicyInline MergePolicy = "inline"
	// PolicyFailFast aborts the whole plan on the first provider failure.
	PolicyFailFast MergePolicy = "fail_fast"
)

// ErrNoResults is returned when there is nothing to merge.
var ErrNoResults = errors.New("no provider results to merge")

// ParsePolicy maps a configuration value to a MergePolicy. Empty selects PolicyInline.
func ParsePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))) {
	case "", PolicyInline:
		return PolicyInline, nil
	case PolicyFailFast:
		return PolicyFailFast, nil
	default:
		return "", fmt.Errorf("unknown merge policy %q", s)
	}
}

// Result is the outcome of one provider call: either Text or Err is meaningful.
type Result struct {
	ProviderID string
	Heading    string
	Text       string
	Err        error
}

// Failed reports whether the provider call failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Section is one block of the merged document. An empty Heading means unlabeled.
type Section struct {
	Heading    string
	ProviderID string
	Text       string
	Failed     bool
}

// Document is the merged output of one or more providers, in call order.
type Document struct {
	Sections []Section
}

// Text renders the document as markdown-ish plain text.
func (d Document) Text() string {
	if len(d.Sections) == 1 && d.Sections[0].Heading == "" {
		return d.Sections[0].Text
	}
	blocks := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		if s.Heading == "" {
			blocks = append(blocks, s.Text)
			continue
		}
		blocks = append(blocks, "## "+s.Heading+"\n\n"+s.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// ProviderIDs lists the providers contributing to the document, in order.
func (d Document) ProviderIDs() []string {
	ids := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		ids = append(ids, s.ProviderID)
	}
	return ids
}

// Merge combines provider results into a Document.
//
// A single result passes through unlabeled and its error propagates. With several
// results, PolicyFailFast propagates the first error while PolicyInline keeps one
// labeled section per provider and writes the error text into the failed section.
func Merge(results []Result, policy MergePolicy) (Document, error) {
	if len(results) == 0 {
		return Document{}, ErrNoResults
	}

	if len(results) == 1 {
		r := results[0]
		if r.Failed() {
			return Document{}, r.Err
		}
		return Document{Sections: []Section{{ProviderID: r.ProviderID, Text: r.Text}}}, nil
	}

	sections := make([]Section, 0, len(results))
	for _, r := range results {
		if r.Failed() {
			if policy == PolicyFailFast {
				return Document{}, r.Err
			}
			sections = append(sections, Section{
				Heading:    heading(r),
				ProviderID: r.ProviderID,
				Text:       ErrorText(heading(r), r.Err),
				Failed:     true,
			})
			continue
		}
		sections = append(sections, Section{
			Heading:    heading(r),
			ProviderID: r.ProviderID,
			Text:       r.Text,
		})
	}
	return Document{Sections: sections}, nil
}

// ErrorText is the inline text recorded for a failed provider.
func ErrorText(label string, err error) string {
	return fmt.Sprintf("Error from %s: %v", label, err)
}

func heading(r Result) string {
	if strings.TrimSpace(r.Heading) != "" {
		return r.Heading
	}
	return r.ProviderID
}
