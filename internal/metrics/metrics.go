package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registerAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ihome_register_attempts_total",
		Help: "Number of register attempts grouped by status.",
	}, []string{"status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ihome_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	codeIssues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ihome_verify_code_issues_total",
		Help: "Number of verification code issues grouped by kind and status.",
	}, []string{"kind", "status"})

	imageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ihome_image_uploads_total",
		Help: "Number of image upload requests grouped by kind and status.",
	}, []string{"kind", "status"})
)

// IncRegister increments the register counter.
func IncRegister(status string) {
	registerAttempts.WithLabelValues(status).Inc()
}

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncCodeIssue increments the verification code counter.
func IncCodeIssue(kind, status string) {
	codeIssues.WithLabelValues(kind, status).Inc()
}

// IncUpload increments the image upload counter.
func IncUpload(kind, status string) {
	imageUploads.WithLabelValues(kind, status).Inc()
}
