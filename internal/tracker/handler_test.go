package tracker_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/myniu/internal/telemetry/metrics"
	"github.com/2beens/myniu/internal/tracker"
	"github.com/2beens/myniu/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T) (*tracker.Handler, *MockStore, *metrics.Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	storeMock := NewMockStore(ctrl)
	metricsManager := metrics.NewTestManager()
	handler := tracker.NewHandler(storeMock, metricsManager, tracker.HandlerParams{
		Now: func() time.Time {
			return time.Date(2024, time.January, 5, 22, 10, 0, 0, time.UTC)
		},
	})
	return handler, storeMock, metricsManager
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) pkg.ErrorResponse {
	t.Helper()
	var resp pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_HandleAddTraining(t *testing.T) {
	handler, storeMock, metricsManager := newTestHandler(t)

	training := validTraining()
	storeMock.EXPECT().
		AddTraining(gomock.Any(), training).
		DoAndReturn(func(_ context.Context, tr tracker.Training) (*tracker.Training, error) {
			tr.ID = 7
			return &tr, nil
		})

	rec := httptest.NewRecorder()
	handler.HandleAddTraining(rec, jsonRequest(t, http.MethodPost, "/api/trainings", training))

	require.Equal(t, http.StatusCreated, rec.Code)
	var added tracker.Training
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, 7, added.ID)
	assert.Equal(t, training.Calories, added.Calories)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterTrainingsAdded))
}

func TestHandler_HandleAddTraining_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		storeErr       error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "validation",
			storeErr:       &tracker.ValidationError{Field: "max_hr", Reason: "must be >= avg_hr"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "validation failed",
		},
		{
			name:           "conflict",
			storeErr:       &tracker.ConflictError{Date: "2024-01-05"},
			expectedStatus: http.StatusConflict,
			expectedError:  "training already exists",
		},
		{
			name:           "store failure",
			storeErr:       &tracker.StoreError{Op: "add training", Err: errors.New("disk full")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to add training",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, storeMock, metricsManager := newTestHandler(t)
			storeMock.EXPECT().
				AddTraining(gomock.Any(), gomock.Any()).
				Return(nil, tc.storeErr)

			rec := httptest.NewRecorder()
			handler.HandleAddTraining(rec, jsonRequest(t, http.MethodPost, "/api/trainings", validTraining()))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedError, decodeError(t, rec).Error)
			assert.Zero(t, testutil.ToFloat64(metricsManager.CounterTrainingsAdded))
		})
	}
}

func TestHandler_HandleAddTraining_InvalidJSON(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trainings", bytes.NewBufferString(`{"duration_min": "long"`))
	handler.HandleAddTraining(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleGetTraining(t *testing.T) {
	handler, storeMock, _ := newTestHandler(t)

	training := validTraining()
	training.ID = 3
	storeMock.EXPECT().GetTraining(gomock.Any(), 3).Return(&training, nil)
	storeMock.EXPECT().GetTraining(gomock.Any(), 4).Return(nil, tracker.ErrTrainingNotFound)

	rec := httptest.NewRecorder()
	handler.HandleGetTraining(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/trainings/3", nil), map[string]string{"id": "3"}))
	require.Equal(t, http.StatusOK, rec.Code)
	var got tracker.Training
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, training, got)

	rec = httptest.NewRecorder()
	handler.HandleGetTraining(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/trainings/4", nil), map[string]string{"id": "4"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.HandleGetTraining(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/trainings/x", nil), map[string]string{"id": "x"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleDeleteTraining(t *testing.T) {
	handler, storeMock, metricsManager := newTestHandler(t)

	gomock.InOrder(
		storeMock.EXPECT().DeleteTraining(gomock.Any(), 9).Return(true, nil),
		storeMock.EXPECT().DeleteTraining(gomock.Any(), 9).Return(false, nil),
	)

	rec := httptest.NewRecorder()
	handler.HandleDeleteTraining(rec, mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/trainings/9", nil), map[string]string{"id": "9"}))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp tracker.DeleteTrainingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 9, resp.DeletedID)

	rec = httptest.NewRecorder()
	handler.HandleDeleteTraining(rec, mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/trainings/9", nil), map[string]string{"id": "9"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterTrainingsDeleted))
}

func TestHandler_HandleListTrainings(t *testing.T) {
	handler, storeMock, _ := newTestHandler(t)

	storeMock.EXPECT().
		ListTrainings(gomock.Any(), tracker.TrainingListParams{Limit: tracker.DefaultListLimit}).
		Return([]tracker.Training{{ID: 2}, {ID: 1}}, nil)
	storeMock.EXPECT().
		ListTrainings(gomock.Any(), tracker.TrainingListParams{From: "2024-01-01", Limit: 5}).
		Return([]tracker.Training{}, nil)

	rec := httptest.NewRecorder()
	handler.HandleListTrainings(rec, httptest.NewRequest(http.MethodGet, "/api/trainings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp tracker.TrainingsListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Trainings, 2)

	rec = httptest.NewRecorder()
	handler.HandleListTrainings(rec, httptest.NewRequest(http.MethodGet, "/api/trainings?limit=5&from=2024-01-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"trainings": []}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.HandleListTrainings(rec, httptest.NewRequest(http.MethodGet, "/api/trainings?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleLogDailyField(t *testing.T) {
	handler, storeMock, metricsManager := newTestHandler(t)

	storeMock.EXPECT().
		UpsertDailyField(gomock.Any(), "2024-01-03", tracker.FieldReadingMinutes, 20).
		Return(&tracker.DailyLog{Date: "2024-01-03", ReadingMinutes: 20}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/daily/reading", tracker.DailyFieldRequest{Date: "2024-01-03", Value: 20})
	rec := httptest.NewRecorder()
	handler.HandleLogDailyField(rec, mux.SetURLVars(req, map[string]string{"field": "reading"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var dailyLog tracker.DailyLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dailyLog))
	assert.Equal(t, 20, dailyLog.ReadingMinutes)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterDailyLogsWritten.WithLabelValues("readingMinutes")))
}

func TestHandler_HandleLogDailyField_IncrementWaterToday(t *testing.T) {
	handler, storeMock, _ := newTestHandler(t)

	storeMock.EXPECT().
		IncrementDailyField(gomock.Any(), "2024-01-05", tracker.FieldWaterGlasses, 1).
		Return(&tracker.DailyLog{Date: "2024-01-05", WaterGlasses: 5}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/daily/water", tracker.DailyFieldRequest{Value: 1, Increment: true})
	rec := httptest.NewRecorder()
	handler.HandleLogDailyField(rec, mux.SetURLVars(req, map[string]string{"field": "water"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var dailyLog tracker.DailyLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dailyLog))
	assert.Equal(t, 5, dailyLog.WaterGlasses)
}

func TestHandler_HandleLogDailyField_Invalid(t *testing.T) {
	handler, storeMock, _ := newTestHandler(t)

	req := jsonRequest(t, http.MethodPost, "/api/daily/sleep", tracker.DailyFieldRequest{Value: 8})
	rec := httptest.NewRecorder()
	handler.HandleLogDailyField(rec, mux.SetURLVars(req, map[string]string{"field": "sleep"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	storeMock.EXPECT().
		UpsertDailyField(gomock.Any(), "2024-01-05", tracker.FieldKefirGlasses, -2).
		Return(nil, &tracker.ValidationError{Field: "kefirGlasses", Reason: "negative"})

	req = jsonRequest(t, http.MethodPost, "/api/daily/kefir", tracker.DailyFieldRequest{Value: -2})
	rec = httptest.NewRecorder()
	handler.HandleLogDailyField(rec, mux.SetURLVars(req, map[string]string{"field": "kefir"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid kefirGlasses: negative", decodeError(t, rec).Detail)
}

func TestHandler_HandleGetDailyLog(t *testing.T) {
	handler, storeMock, _ := newTestHandler(t)

	storeMock.EXPECT().
		GetDailyLog(gomock.Any(), "2024-01-05").
		Return(&tracker.DailyLog{Date: "2024-01-05"}, nil)

	rec := httptest.NewRecorder()
	handler.HandleGetDailyLog(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/daily/today", nil), map[string]string{"date": "today"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-01-05","reading_minutes":0,"water_glasses":0,"kefir_glasses":0,"no_phone_after_21":false}`, rec.Body.String())
}

func TestHandler_HandleListDailyLogs(t *testing.T) {
	handler, storeMock, metricsManager := newTestHandler(t)

	storeMock.EXPECT().
		ListDailyLogs(gomock.Any(), tracker.DailyLogListParams{From: "2024-01-01", To: "2024-01-07", Limit: 7}).
		Return(nil, &tracker.StoreError{Op: "list daily logs", Err: errors.New("database is locked")})

	rec := httptest.NewRecorder()
	handler.HandleListDailyLogs(rec, httptest.NewRequest(http.MethodGet, "/api/daily/logs?from=2024-01-01&to=2024-01-07&limit=7", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterStoreErrors))
}
