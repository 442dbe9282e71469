package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brokerage",
			Name:      "availability_checks_total",
			Help:      "Count of calendar availability resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	leadsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brokerage",
			Name:      "leads_received_total",
			Help:      "Count of leads captured by source.",
		},
		[]string{"source"},
	)

	appointmentsBooked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brokerage",
			Name:      "appointments_booked_total",
			Help:      "Count of appointments booked through the site.",
		},
	)

	remindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brokerage",
			Name:      "reminder_emails_total",
			Help:      "Count of reminder and follow-up emails sent by kind.",
		},
		[]string{"kind"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityChecks, leadsReceived, appointmentsBooked, remindersSent)
	})
}

func IncAvailabilityCheck(outcome string) {
	availabilityChecks.WithLabelValues(outcome).Inc()
}

func IncLeadReceived(source string) {
	leadsReceived.WithLabelValues(source).Inc()
}

func IncAppointmentBooked() {
	appointmentsBooked.Inc()
}

func IncReminderSent(kind string) {
	remindersSent.WithLabelValues(kind).Inc()
}
