package invoice

import (
	"time"

	"github.com/google/uuid"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
)

// Invoice is an uploaded supplier invoice document
type Invoice struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	FileData    []byte    `json:"-"`
	ContentType string    `json:"content_type"`
	DateCreated time.Time `json:"date_created"`
	Scanned     bool      `json:"scanned"`
	Linked      bool      `json:"linked"`
}

// Summary is an invoice without its document bytes
type Summary struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	DateCreated time.Time `json:"date_created"`
	Scanned     bool      `json:"scanned"`
	Linked      bool      `json:"linked"`
}

func (i *Invoice) Summary() *Summary {
	return &Summary{
		ID:          i.ID,
		FileName:    i.FileName,
		ContentType: i.ContentType,
		DateCreated: i.DateCreated,
		Scanned:     i.Scanned,
		Linked:      i.Linked,
	}
}

// Validate checks the scanned/linked state pair
func (i *Invoice) Validate() error {
	if i.Linked && !i.Scanned {
		return ierr.NewError("linked invoice must be scanned").
			WithHint("An invoice can only be linked after its line items were scanned").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Copy returns a copy sharing the document bytes, which are never mutated
func (i *Invoice) Copy() *Invoice {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
