package analytics

import (
	"net/http"
	"strconv"

	"github.com/2beens/myniu/internal/telemetry/tracing"
	"github.com/2beens/myniu/pkg"

	log "github.com/sirupsen/logrus"
)

type StreaksResponse struct {
	Streaks *Streaks `json:"streaks"`
	Goal    int      `json:"water_goal"`
}

type ComplianceResponse struct {
	Days int `json:"days"`
	Rate int `json:"rate"`
}

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.dashboard")
	defer span.End()

	dashboard, err := handler.analyzer.Dashboard(ctx)
	if err != nil {
		log.Errorf("compose dashboard: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to compose dashboard", "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dashboard)
}

func (handler *Handler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.streaks")
	defer span.End()

	streaks, err := handler.analyzer.Streaks(ctx)
	if err != nil {
		log.Errorf("compute streaks: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to compute streaks", "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, StreaksResponse{
		Streaks: streaks,
		Goal:    handler.analyzer.params.WaterGlassesGoal,
	})
}

func (handler *Handler) HandleCompliance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.compliance")
	defer span.End()

	days := handler.analyzer.params.ComplianceWindowDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		var err error
		days, err = strconv.Atoi(daysStr)
		if err != nil {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid days", "days must be an integer")
			return
		}
	}

	rate, err := handler.analyzer.ComplianceRate(ctx, days)
	if err != nil {
		log.Errorf("compute compliance rate for %d days: %s", days, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to compute compliance", "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, ComplianceResponse{
		Days: days,
		Rate: rate,
	})
}
