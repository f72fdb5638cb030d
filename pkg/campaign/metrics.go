package campaign

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type engineMetrics struct {
	campaignsCreated  prometheus.Counter
	cancellations     prometheus.Counter
	contributions     prometheus.Counter
	contributedAmount prometheus.Counter
	finalizations     *prometheus.CounterVec
	refunds           prometheus.Counter
	refundedAmount    prometheus.Counter
	settledAmount     prometheus.Counter
	activeCampaigns   prometheus.Gauge
}

// newEngineMetrics registers with reg. A nil registry yields working but unregistered metrics.
func newEngineMetrics(reg prometheus.Registerer) *engineMetrics {
	factory := promauto.With(reg)
	return &engineMetrics{
		campaignsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_created_total",
			Help: "Total number of campaigns created",
		}),
		cancellations: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_cancelled_total",
			Help: "Total number of campaigns cancelled",
		}),
		contributions: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_contributions_total",
			Help: "Total number of accepted contributions",
		}),
		contributedAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_contributed_amount_total",
			Help: "Sum of accepted contribution amounts",
		}),
		finalizations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_finalized_total",
			Help: "Total number of campaigns finalized, by resulting status",
		}, []string{"status"}),
		refunds: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_refunds_total",
			Help: "Total number of refunds claimed",
		}),
		refundedAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_refunded_amount_total",
			Help: "Sum of refunded amounts",
		}),
		settledAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaign_settled_amount_total",
			Help: "Sum of proceeds paid out to owners of successful campaigns",
		}),
		activeCampaigns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "campaign_active",
			Help: "Number of campaigns in the active set",
		}),
	}
}
