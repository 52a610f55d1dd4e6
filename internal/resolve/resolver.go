package resolve

import (
	"strings"

	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/tokens"
)

// Reason classifies why a request could not be authenticated.
type Reason int

const (
	ReasonNone Reason = iota
	// NoCredentials: neither a session nor an Authorization header.
	NoCredentials
	// MalformedHeader: Authorization header present but not "Bearer <token>".
	MalformedHeader
	// InvalidToken: bearer token present but rejected. The codec does not
	// distinguish expired from forged, so this covers both.
	InvalidToken
)

func (r Reason) String() string {
	switch r {
	case NoCredentials:
		return "no credentials"
	case MalformedHeader:
		return "malformed authorization header"
	case InvalidToken:
		return "invalid or expired token"
	}
	return ""
}

// Outcome is the resolver's sole result: an identity, or a reason why not.
type Outcome struct {
	Identity *models.Identity
	Reason   Reason
}

// Authenticated reports whether the request carries a verified identity.
func (o Outcome) Authenticated() bool { return o.Identity != nil }

// Resolver decides how a request is authenticated. Evaluation order is
// fixed: a valid session wins over a bearer token, because the session is
// the server-controlled, revocable channel.
type Resolver struct {
	codec *tokens.Codec
}

func NewResolver(codec *tokens.Codec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve inspects the session identity (already loaded by the transport
// layer) and the raw Authorization header, first match wins.
func (r *Resolver) Resolve(sessionIdentity *models.Identity, authorization string) Outcome {
	if sessionIdentity != nil {
		return Outcome{Identity: sessionIdentity}
	}
	if authorization == "" {
		return Outcome{Reason: NoCredentials}
	}
	raw, ok := bearerToken(authorization)
	if !ok {
		return Outcome{Reason: MalformedHeader}
	}
	if id := r.codec.Verify(tokens.Access, raw); id != nil {
		return Outcome{Identity: id}
	}
	return Outcome{Reason: InvalidToken}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	if tok == "" {
		return "", false
	}
	return tok, true
}
