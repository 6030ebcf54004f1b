package tracker

import (
	"math"
	"unicode/utf8"
)

const (
	MaxDurationMin    = 300
	MaxCalories       = 10000
	MaxHeartRate      = 220
	MaxTrainingEffect = 5.0
	MaxNotesLength    = 1000
)

// Training is a single fitness session. At most one training exists per calendar day.
type Training struct {
	ID             int     `json:"id"`
	Date           string  `json:"date"`
	DurationMin    int     `json:"duration_min"`
	Calories       int     `json:"calories"`
	AvgHR          int     `json:"avg_hr"`
	MaxHR          int     `json:"max_hr"`
	TrainingEffect float64 `json:"training_effect"`
	Notes          string  `json:"notes"`
}

// Day returns the calendar date part of the training timestamp.
func (t *Training) Day() string {
	if len(t.Date) < len(DateLayout) {
		return t.Date
	}
	return t.Date[:len(DateLayout)]
}

// Validate checks all numeric bounds and normalizes the timestamp in place.
func (t *Training) Validate() error {
	ts, _, err := NormalizeTimestamp(t.Date)
	if err != nil {
		return err
	}

	switch {
	case t.DurationMin <= 0 || t.DurationMin > MaxDurationMin:
		return newValidationError("duration_min", "must be in (0, %d], got %d", MaxDurationMin, t.DurationMin)
	case t.Calories < 0 || t.Calories > MaxCalories:
		return newValidationError("calories", "must be in [0, %d], got %d", MaxCalories, t.Calories)
	case t.AvgHR <= 0 || t.AvgHR > MaxHeartRate:
		return newValidationError("avg_hr", "must be in (0, %d], got %d", MaxHeartRate, t.AvgHR)
	case t.MaxHR <= 0 || t.MaxHR > MaxHeartRate:
		return newValidationError("max_hr", "must be in (0, %d], got %d", MaxHeartRate, t.MaxHR)
	case t.MaxHR < t.AvgHR:
		return newValidationError("max_hr", "must be >= avg_hr (%d), got %d", t.AvgHR, t.MaxHR)
	case math.IsNaN(t.TrainingEffect) || t.TrainingEffect < 0 || t.TrainingEffect > MaxTrainingEffect:
		return newValidationError("training_effect", "must be in [0.0, %.1f], got %.2f", MaxTrainingEffect, t.TrainingEffect)
	case utf8.RuneCountInString(t.Notes) > MaxNotesLength:
		return newValidationError("notes", "longer than %d characters", MaxNotesLength)
	}

	t.Date = ts
	return nil
}

type TrainingListParams struct {
	// From and To are inclusive calendar dates (YYYY-MM-DD), empty means unbounded.
	From  string
	To    string
	Limit int
}
