package api

import (
	"net/http"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps the domain error taxonomy to HTTP status codes.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.InsufficientStock, apperr.InvalidState, apperr.InvalidArgument:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes a domain error response. Internal errors are logged and
// reported generically so storage detail never reaches the caller.
func fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		util.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(statusFor(kind), gin.H{"msg": apperr.Message(err)})
}
