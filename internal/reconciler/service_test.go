package reconciler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/RomanSlack/Orchestrator-Arena/internal/auth"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
	"github.com/RomanSlack/Orchestrator-Arena/internal/vote"
)

type fakeAuditor struct {
	drifts []vote.TallyDrift
}

func (f *fakeAuditor) AuditTallies(context.Context) ([]vote.TallyDrift, error) {
	return f.drifts, nil
}

func newCronRouter(app *App, auditor TallyAuditor, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cron := r.Group("/api/cron")
	cron.Use(auth.CronMiddleware(secret))
	NewService(app, auditor).RegisterRoutes(cron)
	return r
}

func TestUpdateStatusEndpoint(t *testing.T) {
	clock := clockwork.NewFakeClock()
	due := comp("due", phase.Upcoming, clock.Now().Add(-time.Minute))
	store := &fakeStore{comps: []*models.Competition{due}}
	app := NewApp(store, nil, clock)
	router := newCronRouter(app, &fakeAuditor{}, "cron-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/cron/update-status", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var summary Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary.ToLive) != 1 || summary.ToLive[0].ID != due.ID {
		t.Errorf("summary = %+v, want one to_live entry", summary)
	}
}

func TestUpdateStatusRequiresSecret(t *testing.T) {
	clock := clockwork.NewFakeClock()
	app := NewApp(&fakeStore{}, nil, clock)
	router := newCronRouter(app, &fakeAuditor{}, "cron-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/cron/update-status", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuditTalliesEndpoint(t *testing.T) {
	clock := clockwork.NewFakeClock()
	app := NewApp(&fakeStore{}, nil, clock)
	auditor := &fakeAuditor{drifts: []vote.TallyDrift{{
		SubmissionID: uuid.New(),
		YesVotes:     5,
		CountedYes:   4,
	}}}
	router := newCronRouter(app, auditor, "cron-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/cron/audit-tallies", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		DriftCount int `json:"drift_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DriftCount != 1 {
		t.Errorf("drift_count = %d, want 1", resp.DriftCount)
	}
}
