package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/autherr"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/config"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/sessions"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/tokens"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/users"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/logger"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/metrics"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/middleware"
)

// RegisterRequest is the JSON body for account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the JSON body for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler composes the credential verifier, token codec and session
// service into the register/login/refresh/logout/profile flows.
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	codec       *tokens.Codec
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, codec *tokens.Codec) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, codec: codec}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.RegisterUser)
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// RegisterUser creates an account and returns the sanitized profile.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, autherr.Validation("username, email and password are required"))
		return
	}
	u, err := h.usersSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"user": u.Public()})
}

// Login verifies credentials and mints an access/refresh pair. Web clients
// additionally get a server-side session plus httpOnly cookies and never
// see the refresh token in the body; mobile clients get both tokens in the
// body and no session.
func (h *AuthHandler) Login(c *gin.Context) {
	ct := clientType(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, autherr.Validation("email and password are required"))
		return
	}
	u, err := h.usersSvc.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.Logins.WithLabelValues(string(ct), "failure").Inc()
		respondError(c, err)
		return
	}

	id := u.Identity()
	access, err := h.codec.Issue(tokens.Access, id)
	if err != nil {
		respondError(c, err)
		return
	}
	refresh, err := h.codec.Issue(tokens.Refresh, id)
	if err != nil {
		respondError(c, err)
		return
	}
	expiresIn := int(h.codec.TTL(tokens.Access).Seconds())

	if ct == ClientWeb {
		// the session write must be acknowledged before the response is
		// sent; otherwise the client may race its own cookie
		sess, err := h.sessionsSvc.Create(c.Request.Context(), id)
		if err != nil {
			logger.Errorf("failed to create session: %v", err)
			respondError(c, err)
			return
		}
		refreshMaxAge := int(h.codec.TTL(tokens.Refresh).Seconds())
		setSessionCookie(c, h.cfg, sess.ID, refreshMaxAge)
		setRefreshCookie(c, h.cfg, refresh, refreshMaxAge)
		metrics.Logins.WithLabelValues(string(ct), "success").Inc()
		respondData(c, http.StatusOK, gin.H{"user": u.Public(), "accessToken": access, "expiresIn": expiresIn})
		return
	}

	metrics.Logins.WithLabelValues(string(ct), "success").Inc()
	respondData(c, http.StatusOK, gin.H{
		"user":         u.Public(),
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    expiresIn,
	})
}

// Refresh rotates the token pair. The refresh token arrives in the cookie
// for web clients and in the body for mobile clients. Rotation does not
// invalidate the previous refresh token; expiry is the only revocation
// mechanism, a known limitation of this design.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ct := clientType(c)

	var raw string
	if ct == ClientWeb {
		raw, _ = c.Cookie(config.RefreshCookieName)
	} else {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&req)
		raw = req.RefreshToken
	}
	if raw == "" {
		respondError(c, autherr.ErrMissingToken)
		return
	}

	id := h.codec.Verify(tokens.Refresh, raw)
	if id == nil {
		// 403, not 401: the client should re-login rather than retry
		respondError(c, autherr.ErrInvalidRefreshToken)
		return
	}

	access, err := h.codec.Issue(tokens.Access, *id)
	if err != nil {
		respondError(c, err)
		return
	}
	refresh, err := h.codec.Issue(tokens.Refresh, *id)
	if err != nil {
		respondError(c, err)
		return
	}
	expiresIn := int(h.codec.TTL(tokens.Access).Seconds())

	if ct == ClientWeb {
		setRefreshCookie(c, h.cfg, refresh, int(h.codec.TTL(tokens.Refresh).Seconds()))
		respondData(c, http.StatusOK, gin.H{"accessToken": access, "expiresIn": expiresIn})
		return
	}
	respondData(c, http.StatusOK, gin.H{"accessToken": access, "refreshToken": refresh, "expiresIn": expiresIn})
}

// Logout destroys the session (when one exists) and clears both cookies.
// It is idempotent: logging out with nothing to destroy still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(config.SessionCookieName); err == nil && sid != "" {
		if err := h.sessionsSvc.Delete(c.Request.Context(), sid); err != nil {
			logger.Warnf("failed to delete session on logout: %v", err)
		}
	}
	clearSessionCookie(c, h.cfg)
	clearRefreshCookie(c, h.cfg)
	respondData(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Profile returns the sanitized record for the resolved identity. A
// resolved identity whose backing record is gone is reported as 404, not
// 401: the credentials were fine, the record is missing.
func (h *AuthHandler) Profile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, autherr.ErrUnauthorized)
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, autherr.ErrNotFound)
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": u.Public()})
}
