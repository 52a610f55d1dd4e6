package resolve

import (
	"net/http"

	"github.com/peerdesk/peerdesk/backend/auth-service/internal/autherr"
)

// Decision tells the transport layer how to answer an unauthenticated
// request: a JSON 401 for API callers, a redirect for browsers. When
// Proceed is true no response is emitted and the caller continues.
type Decision struct {
	Proceed    bool
	Status     int
	RedirectTo string
	Code       string
	Message    string
}

// Strategize is a pure function of the resolver outcome and the caller's
// expected response shape. wantsJSON is derived at the boundary (XHR flag,
// Accept header, API path prefix) and is opaque here.
func Strategize(o Outcome, wantsJSON bool, loginPath string) Decision {
	if o.Authenticated() {
		return Decision{Proceed: true}
	}
	if !wantsJSON {
		return Decision{Status: http.StatusFound, RedirectTo: loginPath}
	}
	msg := o.Reason.String()
	if msg == "" {
		msg = autherr.ErrUnauthorized.Message
	}
	return Decision{
		Status:  http.StatusUnauthorized,
		Code:    autherr.ErrUnauthorized.Code,
		Message: msg,
	}
}
