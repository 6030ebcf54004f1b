package analytics

import (
	"context"
	"fmt"

	"github.com/2beens/myniu/internal/telemetry/tracing"
)

type Dashboard struct {
	Stats                *Stats          `json:"stats"`
	Streaks              *Streaks        `json:"streaks"`
	ComplianceRate       int             `json:"compliance_rate"`
	ComplianceWindowDays int             `json:"compliance_window_days"`
	WeeklyCalories       *WeeklyCalories `json:"weekly_calories"`
	DaysIdle             int             `json:"days_idle"`
	WaterToday           int             `json:"water_today"`
	WaterGoal            int             `json:"water_goal"`
}

// Dashboard assembles a snapshot of all derived metrics.
func (a *Analyzer) Dashboard(ctx context.Context) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stats, err := a.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	streaks, err := a.Streaks(ctx)
	if err != nil {
		return nil, fmt.Errorf("streaks: %w", err)
	}
	compliance, err := a.ComplianceRate(ctx, a.params.ComplianceWindowDays)
	if err != nil {
		return nil, fmt.Errorf("compliance: %w", err)
	}
	weekly, err := a.WeeklyCalories(ctx)
	if err != nil {
		return nil, fmt.Errorf("weekly calories: %w", err)
	}
	today, err := a.TodayLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("today log: %w", err)
	}

	daysIdle := NeverTrainedDaysIdle
	if stats.Last != nil {
		if daysIdle, err = a.daysSince(stats.Last.Day()); err != nil {
			return nil, err
		}
	}

	return &Dashboard{
		Stats:                stats,
		Streaks:              streaks,
		ComplianceRate:       compliance,
		ComplianceWindowDays: a.params.ComplianceWindowDays,
		WeeklyCalories:       weekly,
		DaysIdle:             daysIdle,
		WaterToday:           today.WaterGlasses,
		WaterGoal:            a.params.WaterGlassesGoal,
	}, nil
}
