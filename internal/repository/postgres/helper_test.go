package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "postgres unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "wrapped postgres unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "postgres foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "sqlite unique violation", err: errors.New("UNIQUE constraint failed: orders.id"), want: true},
		{name: "sqlite check violation", err: errors.New("CHECK constraint failed: quantity > 0"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
