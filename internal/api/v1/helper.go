package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
)

// parseIDParam reads a uuid path parameter; a malformed id is a validation error
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ierr.WithError(err).
			WithHintf("Invalid %s", name).
			WithReportableDetails(map[string]any{name: raw}).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}
