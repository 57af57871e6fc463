package receipt

import (
	"fmt"
	"time"

	"github.com/danielliedt/smart-receipt-manager/internal/parsing"
)

// Receipt is a fully processed document: the parsed header, the cleaned and
// categorized line items, and a pointer to the archived source file.
type Receipt struct {
	ID          string         `json:"id"`
	Header      parsing.Header `json:"header"`
	Items       []parsing.Item `json:"items"`
	Filename    string         `json:"filename"`
	ContentType string         `json:"content_type"`
	CreatedAt   time.Time      `json:"created_at"`
}

// RejectedError marks a document the pipeline refused to persist: the scan
// was unreadable (no date, no store, no items) or its receipt ID is already
// archived. Rejected documents land in quarantine; the error is expected
// operational outcome, not a failure of the pipeline itself.
type RejectedError struct {
	Source string
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("document %s rejected: %s", e.Source, e.Reason)
}
