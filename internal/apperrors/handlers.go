package apperrors

import (
	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/logger"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the gin response. Unknown errors are
// wrapped so internals never leak to clients.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr,
			"path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
