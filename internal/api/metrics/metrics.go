// Package metrics defines the custom Prometheus metrics of the
// user service. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from echoprometheus under the
// same namespace.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "users"

// ── User lifecycle ────────────────────────────────────────────────────────────

// UsersCreatedTotal counts users successfully created.
var UsersCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts users soft-deleted (deactivated).
var UsersDeletedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "deleted_total",
		Help:      "Total number of users deactivated.",
	},
)

// StoreConflictsTotal counts writes rejected by a unique constraint.
var StoreConflictsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "store_conflicts_total",
		Help:      "Total number of writes rejected by a store unique constraint.",
	},
)

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "accepted" or "rejected"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthorizationFailuresTotal counts protected requests turned away.
// Label:
//   - reason: "missing" (no bearer credentials) or "invalid" (bad token or unknown subject)
var AuthorizationFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "authorization_failures_total",
		Help:      "Total number of protected requests rejected by the token gate.",
	},
	[]string{"reason"},
)

// Register adds every custom collector to reg. Collectors already present
// on reg are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		UsersCreatedTotal,
		UsersDeletedTotal,
		StoreConflictsTotal,
		LoginAttemptsTotal,
		AuthorizationFailuresTotal,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}
