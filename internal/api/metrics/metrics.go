// Package metrics defines and registers the custom Prometheus metrics
// for the campus APIs. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campus"

// SignupsTotal counts created accounts.
// Label:
//   - role: "USER" or "ADMIN"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "ok" or "invalid" (not-found and bad-password are not
//     distinguished, mirroring the external behavior)
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token verifications at the gate.
// Label:
//   - result: "ok", "expired", "bad_signature" or "malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)
