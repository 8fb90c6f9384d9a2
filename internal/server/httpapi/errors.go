package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
)

// errorItem is one entry of the error body; failures are always reported as
// an array of these.
type errorItem struct {
	Message string `json:"message"`
}

// writeError translates a failure into the wire error contract: typed
// domain errors carry their own status hint and messages, anything else
// becomes an opaque internal error.
func writeError(c *gin.Context, err error) {
	if e, ok := domain.As(err); ok {
		body := make([]errorItem, 0, len(e.Messages))
		for _, msg := range e.Messages {
			body = append(body, errorItem{Message: msg})
		}
		c.AbortWithStatusJSON(e.Status, body)
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, []errorItem{{Message: "internal server error"}})
}
