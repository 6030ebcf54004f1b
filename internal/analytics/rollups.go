package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/2beens/myniu/internal/telemetry/tracing"
	"github.com/2beens/myniu/internal/tracker"
	"go.opentelemetry.io/otel/attribute"
)

type WeeklyCalories struct {
	Total int `json:"total"`
	Goal  int `json:"goal"`
}

type Stats struct {
	Count         int               `json:"count"`
	TotalCalories int               `json:"total_calories"`
	AvgHR         int               `json:"avg_hr"`
	PeakHR        int               `json:"peak_hr"`
	AvgEffect     float64           `json:"avg_effect"`
	BestEffect    float64           `json:"best_effect"`
	Last          *tracker.Training `json:"last"`
}

// ComplianceRate returns the percentage (rounded down) of the last days calendar
// days, today included, on which at least one habit was logged.
func (a *Analyzer) ComplianceRate(ctx context.Context, days int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.compliance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("days", days))

	if days <= 0 {
		return 0, nil
	}

	from, to := a.window(days)
	logs, err := a.store.ListDailyLogs(ctx, tracker.DailyLogListParams{
		From: from,
		To:   to,
	})
	if err != nil {
		return 0, fmt.Errorf("list daily logs: %w", err)
	}

	active := 0
	for _, l := range logs {
		if l.HasActivity() {
			active++
		}
	}

	return active * 100 / days, nil
}

// WeeklyCalories sums calories of trainings in the last 7 days, today included.
func (a *Analyzer) WeeklyCalories(ctx context.Context) (_ *WeeklyCalories, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.weekly-calories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from, to := a.window(weeklyWindowDays)
	trainings, err := a.store.ListTrainings(ctx, tracker.TrainingListParams{
		From: from,
		To:   to,
	})
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	weekly := &WeeklyCalories{
		Goal: a.params.WeeklyCaloriesGoal,
	}
	for _, t := range trainings {
		weekly.Total += t.Calories
	}
	return weekly, nil
}

// DaysIdle returns the number of days since the most recent training,
// or NeverTrainedDaysIdle if there is none.
func (a *Analyzer) DaysIdle(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.days-idle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	trainings, err := a.store.ListTrainings(ctx, tracker.TrainingListParams{Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("list trainings: %w", err)
	}
	if len(trainings) == 0 {
		return NeverTrainedDaysIdle, nil
	}

	return a.daysSince(trainings[0].Day())
}

func (a *Analyzer) daysSince(day string) (int, error) {
	today := a.today()
	last, err := tracker.ParseDay(day, today.Location())
	if err != nil {
		return 0, fmt.Errorf("parse training day %q: %w", day, err)
	}

	// round, a day across a DST switch is 23 or 25 hours long
	days := int(math.Round(today.Sub(last).Hours() / 24))
	if days < 0 {
		return 0, nil
	}
	return days, nil
}

// Stats aggregates all trainings ever recorded. Every value is zero when
// there are no trainings.
func (a *Analyzer) Stats(ctx context.Context) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	trainings, err := a.store.ListTrainings(ctx, tracker.TrainingListParams{})
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	return aggregate(trainings), nil
}

// aggregate expects trainings ordered most recent first.
func aggregate(trainings []tracker.Training) *Stats {
	stats := &Stats{
		Count: len(trainings),
	}
	if len(trainings) == 0 {
		return stats
	}

	last := trainings[0]
	stats.Last = &last

	var hrSum, hrCount int
	var effectSum float64
	for _, t := range trainings {
		stats.TotalCalories += t.Calories
		if t.AvgHR > 0 {
			hrSum += t.AvgHR
			hrCount++
		}
		if t.MaxHR > stats.PeakHR {
			stats.PeakHR = t.MaxHR
		}
		if t.TrainingEffect > stats.BestEffect {
			stats.BestEffect = t.TrainingEffect
		}
		effectSum += t.TrainingEffect
	}

	if hrCount > 0 {
		stats.AvgHR = int(math.Round(float64(hrSum) / float64(hrCount)))
	}
	stats.AvgEffect = math.Round(effectSum/float64(len(trainings))*100) / 100

	return stats
}
