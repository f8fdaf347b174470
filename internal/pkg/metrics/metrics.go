package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for ledger operations.
type Metrics struct {
	PointsAwarded     prometheus.Counter
	PointsRedeemed    prometheus.Counter
	RedemptionsDenied prometheus.Counter
	PenaltiesIssued   prometheus.Counter
	PenaltiesPaid     prometheus.Counter
	PickupRejections  prometheus.Counter
	ScoreUpdates      *prometheus.CounterVec
}

// New registers and returns ledger metrics collectors.
func New() *Metrics {
	return &Metrics{
		PointsAwarded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wasteworks_points_awarded_total",
			Help: "Total reward points awarded",
		}),
		PointsRedeemed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wasteworks_points_redeemed_total",
			Help: "Total reward points redeemed",
		}),
		RedemptionsDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wasteworks_redemptions_denied_total",
			Help: "Redemption attempts denied for insufficient balance",
		}),
		PenaltiesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wasteworks_penalties_issued_total",
			Help: "Total penalties issued",
		}),
		PenaltiesPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wasteworks_penalties_paid_total",
			Help: "Total penalties paid",
		}),
		PickupRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wasteworks_pickup_rejections_total",
			Help: "Total pickups rejected for failed segregation",
		}),
		ScoreUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wasteworks_compliance_score_updates_total",
			Help: "Compliance score updates by source event",
		}, []string{"source"}),
	}
}

// NewForTest returns collectors registered against a private registry, so
// tests can construct services without hitting duplicate registration panics.
func NewForTest() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		PointsAwarded:     factory.NewCounter(prometheus.CounterOpts{Name: "wasteworks_points_awarded_total", Help: "t"}),
		PointsRedeemed:    factory.NewCounter(prometheus.CounterOpts{Name: "wasteworks_points_redeemed_total", Help: "t"}),
		RedemptionsDenied: factory.NewCounter(prometheus.CounterOpts{Name: "wasteworks_redemptions_denied_total", Help: "t"}),
		PenaltiesIssued:   factory.NewCounter(prometheus.CounterOpts{Name: "wasteworks_penalties_issued_total", Help: "t"}),
		PenaltiesPaid:     factory.NewCounter(prometheus.CounterOpts{Name: "wasteworks_penalties_paid_total", Help: "t"}),
		PickupRejections:  factory.NewCounter(prometheus.CounterOpts{Name: "wasteworks_pickup_rejections_total", Help: "t"}),
		ScoreUpdates:      factory.NewCounterVec(prometheus.CounterOpts{Name: "wasteworks_compliance_score_updates_total", Help: "t"}, []string{"source"}),
	}
}
