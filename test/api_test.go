//go:build integration_test || all_tests

package test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/myniu/internal"
	"github.com/2beens/myniu/internal/analytics"
	"github.com/2beens/myniu/internal/tracker"
	"github.com/2beens/myniu/pkg"
)

func (s *IntegrationTestSuite) TestHealth() {
	var health internal.HealthResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", nil, &health))
	s.Equal("ok", health.Status)
	s.Equal("postgres", health.Store)
	s.Equal("test-version-info", health.Version)
}

func (s *IntegrationTestSuite) TestTrainings() {
	today := time.Now().UTC()

	var added tracker.Training
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/trainings", tracker.Training{
		Date:           today.Format("2006-01-02") + " 07:15",
		DurationMin:    40,
		Calories:       380,
		AvgHR:          138,
		MaxHR:          171,
		TrainingEffect: 3.1,
		Notes:          "tempo run",
	}, &added))
	s.Positive(added.ID)

	var errResp pkg.ErrorResponse
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/trainings", tracker.Training{
		Date:        today.Format("2006-01-02") + " 19:00",
		DurationMin: 20,
		AvgHR:       120,
		MaxHR:       130,
	}, &errResp))

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/trainings", tracker.Training{
		Date:        today.AddDate(0, 0, -1).Format("2006-01-02") + " 19:00",
		DurationMin: 0,
		AvgHR:       120,
		MaxHR:       130,
	}, &errResp))

	var got tracker.Training
	s.Equal(http.StatusOK, s.do(http.MethodGet, fmt.Sprintf("/api/trainings/%d", added.ID), nil, &got))
	s.Equal(added, got)

	var list tracker.TrainingsListResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/trainings", nil, &list))
	s.Len(list.Trainings, 1)

	var deleted tracker.DeleteTrainingResponse
	s.Equal(http.StatusOK, s.do(http.MethodDelete, fmt.Sprintf("/api/trainings/%d", added.ID), nil, &deleted))
	s.Equal(added.ID, deleted.DeletedID)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, fmt.Sprintf("/api/trainings/%d", added.ID), nil, &errResp))
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/api/trainings/%d", added.ID), nil, &errResp))
}

func (s *IntegrationTestSuite) TestDailyLogsAndDashboard() {
	today := time.Now().UTC()
	for i := 0; i < 3; i++ {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/daily/kefir", tracker.DailyFieldRequest{
			Date:  day,
			Value: 1,
		}, nil))
	}
	for i := 0; i < 4; i++ {
		s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/daily/water", tracker.DailyFieldRequest{
			Value:     1,
			Increment: true,
		}, nil))
	}

	var todayLog tracker.DailyLog
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/daily/today", nil, &todayLog))
	s.Equal(4, todayLog.WaterGlasses)
	s.Equal(1, todayLog.KefirGlasses)

	var logs tracker.DailyLogsListResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/daily/logs", nil, &logs))
	s.Len(logs.Logs, 3)

	var streaks analytics.StreaksResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/stats/streaks", nil, &streaks))
	s.Equal(3, streaks.Streaks.Kefir)
	s.Equal(0, streaks.Streaks.Water)

	var dashboard analytics.Dashboard
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/dashboard", nil, &dashboard))
	s.Equal(0, dashboard.Stats.Count)
	s.Equal(analytics.NeverTrainedDaysIdle, dashboard.DaysIdle)
	// 3 of the last 7 days had activity
	s.Equal(42, dashboard.ComplianceRate)
	s.Equal(4, dashboard.WaterToday)
	s.Equal(6, dashboard.WaterGoal)
	s.Equal(1500, dashboard.WeeklyCalories.Goal)

	var errResp pkg.ErrorResponse
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/api/daily/coffee", tracker.DailyFieldRequest{Value: 1}, &errResp))
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/daily/water", tracker.DailyFieldRequest{Value: 101}, &errResp))
}
