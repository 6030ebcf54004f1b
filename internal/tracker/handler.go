package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/myniu/internal/telemetry/metrics"
	"github.com/2beens/myniu/internal/telemetry/tracing"
	"github.com/2beens/myniu/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const DefaultListLimit = 200

type DeleteTrainingResponse struct {
	DeletedID int `json:"deleted_id"`
}

type TrainingsListResponse struct {
	Trainings []Training `json:"trainings"`
}

type DailyLogsListResponse struct {
	Logs []DailyLog `json:"logs"`
}

// DailyFieldRequest is the body of POST /api/daily/{field}.
// An empty date means today.
type DailyFieldRequest struct {
	Date      string `json:"date"`
	Value     int    `json:"value"`
	Increment bool   `json:"increment"`
}

type HandlerParams struct {
	DefaultListLimit int
	// Now defines "today" for daily log writes without a date.
	Now func() time.Time
}

type Handler struct {
	store          Store
	metricsManager *metrics.Manager
	params         HandlerParams
}

func NewHandler(store Store, metricsManager *metrics.Manager, params HandlerParams) *Handler {
	if params.DefaultListLimit <= 0 {
		params.DefaultListLimit = DefaultListLimit
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	return &Handler{
		store:          store,
		metricsManager: metricsManager,
		params:         params,
	}
}

func (handler *Handler) HandleAddTraining(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.training.add")
	defer span.End()

	var training Training
	if err := json.NewDecoder(r.Body).Decode(&training); err != nil {
		log.Debugf("add training, unmarshal json: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid training payload", err.Error())
		return
	}

	added, err := handler.store.AddTraining(ctx, training)
	if err != nil {
		handler.writeStoreError(w, "add training", err)
		return
	}

	handler.metricsManager.CounterTrainingsAdded.Inc()
	log.Debugf("new training added: [%d] %s", added.ID, added.Date)
	pkg.WriteJSON(w, http.StatusCreated, added)
}

func (handler *Handler) HandleGetTraining(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.training.get")
	defer span.End()

	id, ok := trainingID(w, r)
	if !ok {
		return
	}

	training, err := handler.store.GetTraining(ctx, id)
	if err != nil {
		handler.writeStoreError(w, "get training", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, training)
}

func (handler *Handler) HandleListTrainings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.training.list")
	defer span.End()

	limit, ok := handler.limit(w, r)
	if !ok {
		return
	}

	trainings, err := handler.store.ListTrainings(ctx, TrainingListParams{
		From:  r.URL.Query().Get("from"),
		To:    r.URL.Query().Get("to"),
		Limit: limit,
	})
	if err != nil {
		handler.writeStoreError(w, "list trainings", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, TrainingsListResponse{Trainings: trainings})
}

func (handler *Handler) HandleDeleteTraining(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.training.delete")
	defer span.End()

	id, ok := trainingID(w, r)
	if !ok {
		return
	}

	deleted, err := handler.store.DeleteTraining(ctx, id)
	if err != nil {
		handler.writeStoreError(w, "delete training", err)
		return
	}
	if !deleted {
		pkg.WriteJSONError(w, http.StatusNotFound, "training not found", "")
		return
	}

	handler.metricsManager.CounterTrainingsDeleted.Inc()
	log.Debugf("training %d deleted", id)
	pkg.WriteJSON(w, http.StatusOK, DeleteTrainingResponse{DeletedID: id})
}

func (handler *Handler) HandleLogDailyField(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.daily.log")
	defer span.End()

	field, err := ParseField(mux.Vars(r)["field"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusNotFound, "unknown daily field", err.Error())
		return
	}

	var req DailyFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("log daily field %s, unmarshal json: %s", field, err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid daily log payload", err.Error())
		return
	}
	if req.Date == "" {
		req.Date = Day(handler.params.Now())
	}

	var dailyLog *DailyLog
	if req.Increment {
		dailyLog, err = handler.store.IncrementDailyField(ctx, req.Date, field, req.Value)
	} else {
		dailyLog, err = handler.store.UpsertDailyField(ctx, req.Date, field, req.Value)
	}
	if err != nil {
		handler.writeStoreError(w, "log daily field", err)
		return
	}

	handler.metricsManager.CounterDailyLogsWritten.WithLabelValues(field.String()).Inc()
	log.Tracef("daily log %s: %s = %d (increment: %t)", dailyLog.Date, field, req.Value, req.Increment)
	pkg.WriteJSON(w, http.StatusOK, dailyLog)
}

func (handler *Handler) HandleGetDailyLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.daily.get")
	defer span.End()

	date := mux.Vars(r)["date"]
	if date == "today" {
		date = Day(handler.params.Now())
	}

	dailyLog, err := handler.store.GetDailyLog(ctx, date)
	if err != nil {
		handler.writeStoreError(w, "get daily log", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dailyLog)
}

func (handler *Handler) HandleListDailyLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.daily.list")
	defer span.End()

	limit, ok := handler.limit(w, r)
	if !ok {
		return
	}

	logs, err := handler.store.ListDailyLogs(ctx, DailyLogListParams{
		From:  r.URL.Query().Get("from"),
		To:    r.URL.Query().Get("to"),
		Limit: limit,
	})
	if err != nil {
		handler.writeStoreError(w, "list daily logs", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, DailyLogsListResponse{Logs: logs})
}

// writeStoreError maps the store error taxonomy to HTTP status codes.
func (handler *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	var validationErr *ValidationError
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &validationErr):
		log.Debugf("%s: %s", op, err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "validation failed", validationErr.Error())
	case errors.As(err, &conflictErr):
		log.Debugf("%s: %s", op, err)
		pkg.WriteJSONError(w, http.StatusConflict, "training already exists", conflictErr.Date)
	case errors.Is(err, ErrTrainingNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "training not found", "")
	default:
		handler.metricsManager.CounterStoreErrors.Inc()
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to "+op, "")
	}
}

func (handler *Handler) limit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return handler.params.DefaultListLimit, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid limit", "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}

func trainingID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, id empty", "")
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, id NaN", "")
		return 0, false
	}
	return id, true
}
