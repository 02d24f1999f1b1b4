package reconciler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RomanSlack/Orchestrator-Arena/internal/vote"
)

// TallyAuditor defines what the service layer needs from the vote
// application for the audit route.
type TallyAuditor interface {
	AuditTallies(ctx context.Context) ([]vote.TallyDrift, error)
}

// Service exposes the cron endpoints. Both routes sit behind the cron
// secret middleware; they are driven by an external scheduler, not users.
type Service struct {
	app     *App
	auditor TallyAuditor
}

// NewService creates a new reconciler service
func NewService(app *App, auditor TallyAuditor) *Service {
	return &Service{app: app, auditor: auditor}
}

// RegisterRoutes mounts the cron endpoints.
func (s *Service) RegisterRoutes(cron gin.IRouter) {
	cron.POST("/update-status", s.UpdateStatus)
	cron.GET("/update-status", s.UpdateStatus)
	cron.GET("/audit-tallies", s.AuditTallies)
}

// UpdateStatus runs one reconciliation pass and reports what moved. The
// pass is idempotent: a second call with nothing due reports zero moves.
func (s *Service) UpdateStatus(c *gin.Context) {
	summary, err := s.app.ReconcileAll(c.Request.Context())
	if err != nil {
		// Partial summaries still report what did move.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Reconciliation incomplete",
			"summary": summary,
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AuditTallies reports submissions whose vote counters drifted from their
// vote rows.
func (s *Service) AuditTallies(c *gin.Context) {
	drifts, err := s.auditor.AuditTallies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to audit tallies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drift_count": len(drifts), "drifts": drifts})
}
