package analytics

import (
	"context"
	"time"

	"github.com/2beens/myniu/internal/tracker"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=analytics_test

const (
	DefaultWeeklyCaloriesGoal   = 1500
	DefaultWaterGlassesGoal     = 6
	DefaultStreakLookbackDays   = 365
	DefaultComplianceWindowDays = 7

	// NeverTrainedDaysIdle is reported by DaysIdle when no training exists.
	NeverTrainedDaysIdle = 999

	weeklyWindowDays = 7

	// windows longer than this are read without a lower date bound
	maxBoundedWindowDays = 100 * 366
)

// trackerStore is the read-only part of tracker.Store the analyzer depends on.
type trackerStore interface {
	ListTrainings(ctx context.Context, params tracker.TrainingListParams) ([]tracker.Training, error)
	GetDailyLog(ctx context.Context, date string) (*tracker.DailyLog, error)
	ListDailyLogs(ctx context.Context, params tracker.DailyLogListParams) ([]tracker.DailyLog, error)
}

type AnalyzerParams struct {
	WeeklyCaloriesGoal   int
	WaterGlassesGoal     int
	StreakLookbackDays   int
	ComplianceWindowDays int
	// Now returns the current time, its location defines the calendar day.
	Now func() time.Time
}

// Analyzer derives streaks, compliance and training rollups from the store.
// It never writes and keeps no state between calls.
type Analyzer struct {
	store  trackerStore
	params AnalyzerParams
}

func NewAnalyzer(store trackerStore, params AnalyzerParams) *Analyzer {
	if params.WeeklyCaloriesGoal <= 0 {
		params.WeeklyCaloriesGoal = DefaultWeeklyCaloriesGoal
	}
	if params.WaterGlassesGoal <= 0 {
		params.WaterGlassesGoal = DefaultWaterGlassesGoal
	}
	if params.StreakLookbackDays <= 0 {
		params.StreakLookbackDays = DefaultStreakLookbackDays
	}
	if params.ComplianceWindowDays <= 0 {
		params.ComplianceWindowDays = DefaultComplianceWindowDays
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	return &Analyzer{
		store:  store,
		params: params,
	}
}

// today returns local midnight of the current day.
func (a *Analyzer) today() time.Time {
	now := a.params.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// window returns the first and last calendar day of the n days ending today.
// from is empty when the window reaches further back than any stored date.
func (a *Analyzer) window(days int) (from, to string) {
	today := a.today()
	to = tracker.Day(today)
	if days > maxBoundedWindowDays {
		return "", to
	}
	start := today.AddDate(0, 0, -(days - 1))
	if start.Year() < 1 {
		return "", to
	}
	return tracker.Day(start), to
}

// TodayLog returns today's daily log, zero valued when nothing was logged yet.
func (a *Analyzer) TodayLog(ctx context.Context) (*tracker.DailyLog, error) {
	return a.store.GetDailyLog(ctx, tracker.Day(a.today()))
}
