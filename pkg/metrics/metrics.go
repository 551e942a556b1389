package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobboard"

var (
	gateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "gate_decisions_total",
		Help:      "Authorization gate decisions by outcome.",
	}, []string{"outcome"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	otpEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "otp_events_total",
		Help:      "OTP issue/verify/resend events by outcome.",
	}, []string{"event", "outcome"})

	jobsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "jobs",
		Name:      "expired_total",
		Help:      "Job postings closed because their deadline passed.",
	})
)

func GateDecision(outcome string) {
	gateDecisions.WithLabelValues(outcome).Inc()
}

func LoginAttempt(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

func OTPEvent(event, outcome string) {
	otpEvents.WithLabelValues(event, outcome).Inc()
}

func JobsExpired(n int) {
	jobsExpired.Add(float64(n))
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
