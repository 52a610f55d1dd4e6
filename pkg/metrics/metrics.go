package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "peerdesk", Name: "auth_logins_total", Help: "Login attempts by client type and result."},
		[]string{"client", "result"},
	)
	TokenVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "peerdesk", Name: "auth_token_verifications_total", Help: "Token verifications by kind and result."},
		[]string{"kind", "result"},
	)
	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "peerdesk", Name: "auth_sessions_created_total", Help: "Server-side sessions created."},
	)
	SessionsDestroyed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "peerdesk", Name: "auth_sessions_destroyed_total", Help: "Server-side sessions destroyed at logout."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Logins)
	reg.MustRegister(TokenVerifications)
	reg.MustRegister(SessionsCreated)
	reg.MustRegister(SessionsDestroyed)
}
