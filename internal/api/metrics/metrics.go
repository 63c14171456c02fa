// Package metrics defines and registers all custom Prometheus metrics for
// the accounts API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// TokensIssuedTotal counts bearer tokens issued successfully.
// Label:
//   - grant: how the token was obtained ("register" or "sign_in")
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by grant.",
	},
	[]string{"grant"},
)

// SignInFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "invalid_credentials", "locked_out" or "account_exists"
var SignInFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_in_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// RegistrationsTotal counts accounts created.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// TokenIssueDuration measures credential check plus token issuance end-to-end.
var TokenIssueDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "token_issue_duration_seconds",
		Help:      "Duration of credential verification and token issuance.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
