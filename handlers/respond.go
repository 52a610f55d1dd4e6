package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/autherr"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/config"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/logger"
)

// ClientType steers token delivery: cookies for web, response body for mobile.
type ClientType string

const (
	ClientWeb    ClientType = "web"
	ClientMobile ClientType = "mobile"
)

// clientType reads X-Client-Type; anything but "web" is treated as mobile.
func clientType(c *gin.Context) ClientType {
	if c.GetHeader("X-Client-Type") == string(ClientWeb) {
		return ClientWeb
	}
	return ClientMobile
}

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"ok": true, "data": data})
}

// respondError classifies the error and writes the failure envelope.
// Unclassified errors are logged with request context and surface as a
// generic 500.
func respondError(c *gin.Context, err error) {
	ae := autherr.Classify(err)
	if ae == autherr.ErrInternal {
		logger.Errorf("internal error: %v (method=%s path=%s)", err, c.Request.Method, c.Request.URL.Path)
	}
	c.JSON(ae.Status, gin.H{"ok": false, "error": ae.Message, "code": ae.Code})
}

// cookie flags are relaxed outside production so local HTTP testing works.
func cookieFlags(cfg *config.Config) (secure bool, sameSite http.SameSite) {
	if cfg.IsProduction() {
		return true, http.SameSiteStrictMode
	}
	return false, http.SameSiteLaxMode
}

func setSessionCookie(c *gin.Context, cfg *config.Config, sessionID string, maxAge int) {
	secure, sameSite := cookieFlags(cfg)
	c.SetSameSite(sameSite)
	c.SetCookie(config.SessionCookieName, sessionID, maxAge, "/", "", secure, true)
}

func setRefreshCookie(c *gin.Context, cfg *config.Config, token string, maxAge int) {
	secure, sameSite := cookieFlags(cfg)
	c.SetSameSite(sameSite)
	c.SetCookie(config.RefreshCookieName, token, maxAge, config.RefreshCookiePath, "", secure, true)
}

func clearSessionCookie(c *gin.Context, cfg *config.Config) {
	setSessionCookie(c, cfg, "", -1)
}

func clearRefreshCookie(c *gin.Context, cfg *config.Config) {
	setRefreshCookie(c, cfg, "", -1)
}
