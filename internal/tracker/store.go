package tracker

import "context"

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=tracker_test

var _ Store = (*PsqlRepo)(nil)
var _ Store = (*SqliteRepo)(nil)

// Store is the single owner of trainings and daily logs.
// Every method is one transaction against the underlying engine.
type Store interface {
	AddTraining(ctx context.Context, training Training) (*Training, error)
	GetTraining(ctx context.Context, id int) (*Training, error)
	ListTrainings(ctx context.Context, params TrainingListParams) ([]Training, error)
	DeleteTraining(ctx context.Context, id int) (bool, error)

	UpsertDailyField(ctx context.Context, date string, field Field, value int) (*DailyLog, error)
	IncrementDailyField(ctx context.Context, date string, field Field, delta int) (*DailyLog, error)
	GetDailyLog(ctx context.Context, date string) (*DailyLog, error)
	ListDailyLogs(ctx context.Context, params DailyLogListParams) ([]DailyLog, error)
}

// prepareTraining validates the training and returns it normalized.
func prepareTraining(training Training) (Training, error) {
	if err := training.Validate(); err != nil {
		return Training{}, err
	}
	return training, nil
}

func prepareDailyUpsert(date string, field Field, value int) (string, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return "", err
	}
	if err := field.validateValue(value); err != nil {
		return "", err
	}
	return date, nil
}

func prepareDailyIncrement(date string, field Field, delta int) (string, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return "", err
	}
	if err := field.validateIncrement(delta); err != nil {
		return "", err
	}
	return date, nil
}

// fieldArg converts an upsert value to the type of the field column.
func fieldArg(field Field, value int) any {
	if field == FieldNoPhoneAfter21 {
		return value == 1
	}
	return value
}

func normalizeRange(from, to string) (string, string, error) {
	var err error
	if from != "" {
		if from, err = NormalizeDate(from); err != nil {
			return "", "", err
		}
	}
	if to != "" {
		if to, err = NormalizeDate(to); err != nil {
			return "", "", err
		}
	}
	return from, to, nil
}
