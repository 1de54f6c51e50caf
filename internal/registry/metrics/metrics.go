package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
type Metrics struct {
	LandsRegistered prometheus.Counter

	// Payment state changes by type and target status
	PaymentTransitions *prometheus.CounterVec

	// Workflow state changes by target state
	WorkflowTransitions *prometheus.CounterVec

	// Certificate checks at re-listing by outcome
	CertificateVerifications *prometheus.CounterVec

	CertificatesIssued prometheus.Counter

	// Confirmation worker sweep latency
	SweepLatency prometheus.Histogram
}

// New creates the registry metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LandsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "landtitle_lands_registered_total",
			Help: "Total number of parcels registered",
		}),
		PaymentTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "landtitle_payment_transitions_total",
			Help: "Payment state transitions by payment type and target status",
		}, []string{"type", "status"}),
		WorkflowTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "landtitle_transfer_workflow_transitions_total",
			Help: "Transfer workflow transitions by target state",
		}, []string{"state"}),
		CertificateVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "landtitle_certificate_verifications_total",
			Help: "Certificate verifications at re-listing by outcome",
		}, []string{"outcome"}), // outcome: "match", "mismatch", "unreadable"
		CertificatesIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "landtitle_certificates_issued_total",
			Help: "Total number of transfer certificates rendered",
		}),
		SweepLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "landtitle_confirmation_sweep_duration_seconds",
			Help:    "Duration of one confirmation worker sweep",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) IncrementLandsRegistered() {
	if m != nil {
		m.LandsRegistered.Inc()
	}
}

// IncrementPaymentTransition records a payment moving to status.
func (m *Metrics) IncrementPaymentTransition(paymentType, status string) {
	if m != nil {
		m.PaymentTransitions.WithLabelValues(paymentType, status).Inc()
	}
}

// IncrementWorkflowTransition records a workflow entering state.
func (m *Metrics) IncrementWorkflowTransition(state string) {
	if m != nil {
		m.WorkflowTransitions.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) IncrementCertificateVerification(outcome string) {
	if m != nil {
		m.CertificateVerifications.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementCertificatesIssued() {
	if m != nil {
		m.CertificatesIssued.Inc()
	}
}

// ObserveSweepLatency records how long one confirmation sweep took.
func (m *Metrics) ObserveSweepLatency(d time.Duration) {
	if m != nil {
		m.SweepLatency.Observe(d.Seconds())
	}
}
