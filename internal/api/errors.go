package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/postline/postline/internal/apperr"
)

// loginPath is where unauthenticated writers are sent; the auth provider
// owns everything under /auth/.
const loginPath = "/auth/login/"

// loginRedirect points the client at the login flow and back to the
// original destination
func loginRedirect(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, loginPath+"?next="+next)
	c.Abort()
}

// writeError maps a service-layer error onto the HTTP surface.
// PermissionDenied is not handled here: handlers that can hit it know the
// canonical read view to redirect to.
func (r *Router) writeError(c *gin.Context, err error) {
	var fields apperr.FieldErrors

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &fields):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": fields,
		})
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed"})
	case errors.Is(err, apperr.ErrUnauthenticated):
		loginRedirect(c)
	default:
		r.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
	c.Abort()
}
