package types

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier used for tracing
// (transaction ids, message ids). Entity ids use NewEntityID.
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex tx_01HZX3M6Y7Q0V8R5
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

// NewEntityID returns a random v4 uuid for orders and invoices.
// The store keeps these in uuid columns.
func NewEntityID() uuid.UUID {
	return uuid.New()
}

const (
	UUID_PREFIX_TRANSACTION = "tx"
	UUID_PREFIX_MESSAGE     = "msg"
)
