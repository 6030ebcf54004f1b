package analytics

import (
	"context"
	"fmt"

	"github.com/2beens/myniu/internal/telemetry/tracing"
	"github.com/2beens/myniu/internal/tracker"
	"go.opentelemetry.io/otel/attribute"
)

// Habit is a daily log habit a streak can be counted for.
type Habit string

const (
	HabitReading Habit = "reading"
	HabitKefir   Habit = "kefir"
	HabitWater   Habit = "water"
	HabitNoPhone Habit = "no_phone"
)

var AllHabits = []Habit{HabitReading, HabitKefir, HabitWater, HabitNoPhone}

func (h Habit) IsValid() bool {
	switch h {
	case HabitReading, HabitKefir, HabitWater, HabitNoPhone:
		return true
	default:
		return false
	}
}

type Streaks struct {
	Reading int `json:"reading"`
	Kefir   int `json:"kefir"`
	Water   int `json:"water"`
	NoPhone int `json:"no_phone"`
}

// done reports whether the habit was fulfilled on the day of the given log.
func (a *Analyzer) done(habit Habit, l tracker.DailyLog) bool {
	switch habit {
	case HabitReading:
		return l.ReadingMinutes > 0
	case HabitKefir:
		return l.KefirGlasses > 0
	case HabitWater:
		return l.WaterGlasses >= a.params.WaterGlassesGoal
	case HabitNoPhone:
		return l.NoPhoneAfter21
	default:
		return false
	}
}

// Streak counts consecutive days, walking back from today, on which the habit
// was done. A day without a log row (today included) ends the streak.
func (a *Analyzer) Streak(ctx context.Context, habit Habit) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("habit", string(habit)))

	if !habit.IsValid() {
		return 0, fmt.Errorf("unknown habit: %s", habit)
	}

	byDate, err := a.lookbackLogs(ctx)
	if err != nil {
		return 0, err
	}
	return a.walkBack(habit, byDate), nil
}

// Streaks computes the streaks of all habits from a single store read.
func (a *Analyzer) Streaks(ctx context.Context) (_ *Streaks, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.streaks")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	byDate, err := a.lookbackLogs(ctx)
	if err != nil {
		return nil, err
	}

	return &Streaks{
		Reading: a.walkBack(HabitReading, byDate),
		Kefir:   a.walkBack(HabitKefir, byDate),
		Water:   a.walkBack(HabitWater, byDate),
		NoPhone: a.walkBack(HabitNoPhone, byDate),
	}, nil
}

func (a *Analyzer) lookbackLogs(ctx context.Context) (map[string]tracker.DailyLog, error) {
	from, to := a.window(a.params.StreakLookbackDays)
	logs, err := a.store.ListDailyLogs(ctx, tracker.DailyLogListParams{
		From: from,
		To:   to,
	})
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}

	byDate := make(map[string]tracker.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}
	return byDate, nil
}

func (a *Analyzer) walkBack(habit Habit, byDate map[string]tracker.DailyLog) int {
	streak := 0
	day := a.today()
	for streak < a.params.StreakLookbackDays {
		l, ok := byDate[tracker.Day(day)]
		if !ok || !a.done(habit, l) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
