package resolve

import (
	"testing"

	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
	"github.com/peerdesk/peerdesk/backend/auth-service/internal/tokens"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) (*Resolver, *tokens.Codec) {
	t.Helper()
	codec, err := tokens.NewCodec("resolver-test-secret-32-bytes-xx", "15m", "7d")
	require.NoError(t, err)
	return NewResolver(codec), codec
}

func TestResolve_SessionWinsOverBearer(t *testing.T) {
	r, codec := testResolver(t)

	sessionID := &models.Identity{UserID: "session-user", Email: "s@example.com"}
	bearer, err := codec.Issue(tokens.Access, models.Identity{UserID: "token-user", Email: "t@example.com"})
	require.NoError(t, err)

	out := r.Resolve(sessionID, "Bearer "+bearer)
	require.True(t, out.Authenticated())
	require.Equal(t, "session-user", out.Identity.UserID)
}

func TestResolve_SessionAlone(t *testing.T) {
	r, _ := testResolver(t)
	out := r.Resolve(&models.Identity{UserID: "u1", Email: "a@b.c"}, "")
	require.True(t, out.Authenticated())
	require.Equal(t, "u1", out.Identity.UserID)
}

func TestResolve_BearerAlone(t *testing.T) {
	r, codec := testResolver(t)
	raw, err := codec.Issue(tokens.Access, models.Identity{UserID: "u2", Email: "x@x"})
	require.NoError(t, err)

	out := r.Resolve(nil, "Bearer "+raw)
	require.True(t, out.Authenticated())
	require.Equal(t, "u2", out.Identity.UserID)
}

func TestResolve_RefreshTokenNotAcceptedAsBearer(t *testing.T) {
	r, codec := testResolver(t)
	raw, err := codec.Issue(tokens.Refresh, models.Identity{UserID: "u3", Email: "x@x"})
	require.NoError(t, err)

	out := r.Resolve(nil, "Bearer "+raw)
	require.False(t, out.Authenticated())
	require.Equal(t, InvalidToken, out.Reason)
}

func TestResolve_NoCredentials(t *testing.T) {
	r, _ := testResolver(t)
	out := r.Resolve(nil, "")
	require.False(t, out.Authenticated())
	require.Equal(t, NoCredentials, out.Reason)
}

func TestResolve_MalformedHeader(t *testing.T) {
	r, _ := testResolver(t)
	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", "token-without-scheme"} {
		out := r.Resolve(nil, header)
		require.False(t, out.Authenticated(), "header %q", header)
		require.Equal(t, MalformedHeader, out.Reason, "header %q", header)
	}
}

func TestResolve_InvalidBearerToken(t *testing.T) {
	r, _ := testResolver(t)
	out := r.Resolve(nil, "Bearer not.a.token")
	require.False(t, out.Authenticated())
	require.Equal(t, InvalidToken, out.Reason)
}
