package errors

import (
	"net/http"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAndCodeFromErr(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: NewError("missing").Mark(ErrNotFound), status: http.StatusNotFound, code: ErrCodeNotFound},
		{name: "already exists", err: NewError("duplicate").Mark(ErrAlreadyExists), status: http.StatusConflict, code: ErrCodeAlreadyExists},
		{name: "conflict", err: NewError("linked").Mark(ErrConflict), status: http.StatusConflict, code: ErrCodeConflict},
		{name: "validation", err: NewError("bad").Mark(ErrValidation), status: http.StatusBadRequest, code: ErrCodeValidation},
		{name: "persistence", err: NewError("short write").Mark(ErrPersistence), status: http.StatusInternalServerError, code: ErrCodePersistence},
		{name: "database", err: NewError("conn reset").Mark(ErrDatabase), status: http.StatusInternalServerError, code: ErrCodeDatabase},
		{name: "wrapped", err: errors.Wrap(NewError("missing").Mark(ErrNotFound), "get order"), status: http.StatusNotFound, code: ErrCodeNotFound},
		{name: "unmarked", err: errors.New("boom"), status: http.StatusInternalServerError, code: ErrCodeSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
			assert.Equal(t, tt.code, CodeFromErr(tt.err))
		})
	}
}

func TestWithStep(t *testing.T) {
	err := NewError("short write").
		WithStep("update_order", "orders").
		Mark(ErrPersistence)

	assert.True(t, IsPersistence(err))
	assert.Contains(t, err.Error(), "step update_order on orders")

	var payloads []string
	for _, sdp := range errors.GetAllSafeDetails(err) {
		payloads = append(payloads, sdp.SafeDetails...)
	}
	joined := strings.Join(payloads, "\n")
	require.Contains(t, joined, "__json__:")
	assert.Contains(t, joined, `"step":"update_order"`)
	assert.Contains(t, joined, `"table":"orders"`)
}
