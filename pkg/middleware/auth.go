package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/config"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/resolve"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/sessions"
)

const (
	sessionIdentityKey = "session_identity"
	identityKey        = "identity"
)

// WantsJSON derives the caller's expected failure shape: JSON for XHR,
// JSON-accepting or API-prefixed requests, a redirect otherwise.
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/auth/")
}

// SessionLoader attaches the identity of a valid session cookie to the
// request context and slides the session expiry. It never rejects; the
// decision happens in RequireAuth.
func SessionLoader(svc *sessions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			c.Next()
			return
		}
		cookie, err := c.Cookie(config.SessionCookieName)
		if err == nil && cookie != "" {
			sess, err := svc.Validate(c.Request.Context(), cookie)
			if err == nil && sess != nil {
				id := sess.Identity()
				c.Set(sessionIdentityKey, &id)
				_ = svc.Touch(c.Request.Context(), sess.ID)
			}
		}
		c.Next()
	}
}

// RequireAuth resolves the request through the hybrid session/bearer
// policy and answers unauthenticated requests per the response strategy.
func RequireAuth(r *resolve.Resolver, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome := r.Resolve(sessionIdentityFrom(c), c.GetHeader("Authorization"))
		decision := resolve.Strategize(outcome, WantsJSON(c), loginPath)
		if decision.Proceed {
			c.Set(identityKey, outcome.Identity)
			c.Next()
			return
		}
		if decision.RedirectTo != "" {
			c.Redirect(decision.Status, decision.RedirectTo)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(decision.Status, gin.H{"ok": false, "error": decision.Message, "code": decision.Code})
	}
}

func sessionIdentityFrom(c *gin.Context) *models.Identity {
	v, ok := c.Get(sessionIdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*models.Identity)
	return id
}

// IdentityFrom returns the authenticated identity set by RequireAuth.
func IdentityFrom(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*models.Identity)
	return id, ok && id != nil
}
