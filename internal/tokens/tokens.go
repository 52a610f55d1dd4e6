package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
	"github.com/peerdesk/peerdesk/backend/auth-service/pkg/metrics"
)

// Kind distinguishes the two token lifetimes. The kind is embedded as a
// claim so a refresh token can never be presented as an access token.
type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

// Codec issues and verifies signed identity tokens (HS256).
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec builds a codec from the signing secret and the configured TTL
// strings (e.g. "15m", "7d"). Malformed TTL strings are a startup error.
func NewCodec(secret, accessTTL, refreshTTL string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("tokens: signing secret is required")
	}
	at, err := ParseTTL(accessTTL)
	if err != nil {
		return nil, fmt.Errorf("tokens: access ttl: %w", err)
	}
	rt, err := ParseTTL(refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("tokens: refresh ttl: %w", err)
	}
	return &Codec{secret: []byte(secret), accessTTL: at, refreshTTL: rt, now: time.Now}, nil
}

// TTL returns the configured lifetime for the given kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == Refresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a new token of the given kind carrying the identity claims.
func (c *Codec) Issue(kind Kind, id models.Identity) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"userId": id.UserID,
		"email":  id.Email,
		"kind":   string(kind),
		"iat":    now.Unix(),
		"exp":    now.Add(c.TTL(kind)).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// It returns nil on any failure: expired, forged, malformed, wrong kind,
// or missing identity claims. Callers must not be able to distinguish an
// expired token from a forged one through this boundary.
func (c *Codec) Verify(kind Kind, raw string) *models.Identity {
	id := c.verify(kind, raw)
	result := "ok"
	if id == nil {
		result = "rejected"
	}
	metrics.TokenVerifications.WithLabelValues(string(kind), result).Inc()
	return id
}

func (c *Codec) verify(kind Kind, raw string) *models.Identity {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	// exp is optional to the parser but mandatory here; a token without an
	// expiry never validates.
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	// boundary: at exactly exp the token is already expired
	if !c.now().Before(exp.Time) {
		return nil
	}
	if k, _ := claims["kind"].(string); k != string(kind) {
		return nil
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return nil
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil
	}
	return &models.Identity{UserID: userID, Email: email}
}
