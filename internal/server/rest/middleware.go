package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/logging"
	"github.com/dmitrijs2005/supreassistant/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// authRequired accepts "Authorization: Bearer <token>" and stores the user id
// on the context. Every failure is the same 401.
func (s *Server) authRequired(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		s.writeError(c, common.Unauthorized("Invalid token"))
		return
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		s.writeError(c, common.Unauthorized("Invalid token"))
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// writeError is the single mapping from service errors to responses. Errors
// that carry no client message become a bare 500 and are only logged.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	// the outermost classified error decides the status
	var ce *common.Error
	if errors.As(err, &ce) {
		msg = ce.Msg
		switch ce.Kind {
		case common.ErrorValidation:
			status = http.StatusBadRequest
		case common.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case common.ErrorNotFound:
			status = http.StatusNotFound
		}
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bind decodes the JSON body into v, answering 400 on malformed input.
func (s *Server) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.writeError(c, common.Validation("Invalid request body"))
		return false
	}
	return true
}
