package workflow

import (
	"time"

	"github.com/google/uuid"
)

// EventInvoiceCreated is published once an uploaded invoice is committed
const EventInvoiceCreated = "invoice.created"

// Event is the message body exchanged on the workflow topic
type Event struct {
	ID        string    `json:"id"`
	EventName string    `json:"event_name"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	FileName  string    `json:"file_name"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
