package plan

import "time"

// Record is a persisted summary of one generated plan. It never holds the user's profile.
type Record struct {
	ID        string
	CreatedAt time.Time
	Providers []string
	Policy    MergePolicy
	Document  string
	PDFPath   string
}
