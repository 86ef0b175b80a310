package handlers

import (
	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/validator"
	"jobforge_backend/pkg/contextkeys"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the body and runs both the binding tags and
// the custom rules. On failure it has already written the response.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "validator failure", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}
	logger.CtxWithError(ctx, "internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// Identity returns the authenticated caller, responding 401 when absent.
func (h *BaseHandler) Identity(c *gin.Context) (auth.Identity, bool) {
	val, exists := c.Get(string(contextkeys.IdentityContextKey))
	if !exists {
		apperrors.HandleError(c, apperrors.ErrAuthRequired)
		return auth.Identity{}, false
	}
	id, ok := val.(auth.Identity)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrAuthRequired)
		return auth.Identity{}, false
	}
	return id, true
}

// OptionalIdentity returns the caller if the request carried a valid token,
// nil otherwise. Used on endpoints that serve anonymous traffic too.
func (h *BaseHandler) OptionalIdentity(c *gin.Context) *auth.Identity {
	val, exists := c.Get(string(contextkeys.IdentityContextKey))
	if !exists {
		return nil
	}
	if id, ok := val.(auth.Identity); ok {
		return &id
	}
	return nil
}

// RequireParam fetches a path parameter, responding 400 when empty.
func (h *BaseHandler) RequireParam(c *gin.Context, key string) (string, bool) {
	v := c.Param(key)
	if v == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("missing path parameter: "+key))
		return "", false
	}
	return v, true
}
