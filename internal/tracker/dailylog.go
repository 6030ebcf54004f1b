package tracker

import "strings"

// DailyLog holds the habit records of one calendar date.
// A date without a row is equivalent to a zero DailyLog.
type DailyLog struct {
	Date            string `json:"date"`
	ReadingMinutes  int    `json:"reading_minutes"`
	WaterGlasses    int    `json:"water_glasses"`
	KefirGlasses    int    `json:"kefir_glasses"`
	NoPhoneAfter21  bool   `json:"no_phone_after_21"`
	DisciplineScore *int   `json:"discipline_score,omitempty"`
	MoodScore       *int   `json:"mood_score,omitempty"`
}

// HasActivity reports whether any habit has been logged for the day.
func (l *DailyLog) HasActivity() bool {
	return l.ReadingMinutes > 0 || l.WaterGlasses > 0 || l.KefirGlasses > 0 || l.NoPhoneAfter21
}

type DailyLogListParams struct {
	From  string
	To    string
	Limit int
}

// Field names a single updatable column of a DailyLog.
type Field string

const (
	FieldReadingMinutes  Field = "readingMinutes"
	FieldWaterGlasses    Field = "waterGlasses"
	FieldKefirGlasses    Field = "kefirGlasses"
	FieldNoPhoneAfter21  Field = "noPhoneAfter21"
	FieldDisciplineScore Field = "disciplineScore"
	FieldMoodScore       Field = "moodScore"
)

type fieldSpec struct {
	column    string
	min, max  int
	countable bool
}

var fieldSpecs = map[Field]fieldSpec{
	FieldReadingMinutes:  {column: "reading_minutes", min: 0, max: 999, countable: true},
	FieldWaterGlasses:    {column: "water_glasses", min: 0, max: 100, countable: true},
	FieldKefirGlasses:    {column: "kefir_glasses", min: 0, max: 500, countable: true},
	FieldNoPhoneAfter21:  {column: "no_phone_after_21", min: 0, max: 1},
	FieldDisciplineScore: {column: "discipline_score", min: 0, max: 10},
	FieldMoodScore:       {column: "mood_score", min: 0, max: 10},
}

func (f Field) String() string {
	return string(f)
}

func (f Field) IsValid() bool {
	_, ok := fieldSpecs[f]
	return ok
}

// ParseField accepts the field name in camel case, snake case or the short
// route names (reading, water, kefir, phone, discipline, mood).
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "readingminutes", "reading_minutes", "reading":
		return FieldReadingMinutes, nil
	case "waterglasses", "water_glasses", "water":
		return FieldWaterGlasses, nil
	case "kefirglasses", "kefir_glasses", "kefir":
		return FieldKefirGlasses, nil
	case "nophoneafter21", "no_phone_after_21", "phone":
		return FieldNoPhoneAfter21, nil
	case "disciplinescore", "discipline_score", "discipline":
		return FieldDisciplineScore, nil
	case "moodscore", "mood_score", "mood":
		return FieldMoodScore, nil
	default:
		return "", newValidationError("field", "unknown daily log field %q", name)
	}
}

func (f Field) column() string {
	return fieldSpecs[f].column
}

func (f Field) validateValue(value int) error {
	spec, ok := fieldSpecs[f]
	if !ok {
		return newValidationError("field", "unknown daily log field %q", string(f))
	}
	if value < spec.min || value > spec.max {
		return newValidationError(string(f), "must be in [%d, %d], got %d", spec.min, spec.max, value)
	}
	return nil
}

func (f Field) validateIncrement(delta int) error {
	spec, ok := fieldSpecs[f]
	if !ok {
		return newValidationError("field", "unknown daily log field %q", string(f))
	}
	if !spec.countable {
		return newValidationError(string(f), "cannot be incremented")
	}
	if delta <= 0 || delta > spec.max {
		return newValidationError(string(f), "increment must be in (0, %d], got %d", spec.max, delta)
	}
	return nil
}

// dailyLogColumns is the column list every daily log query selects, in scan order.
const dailyLogColumns = `date, reading_minutes, water_glasses, kefir_glasses, no_phone_after_21, discipline_score, mood_score`

func (f Field) max() int {
	return fieldSpecs[f].max
}
