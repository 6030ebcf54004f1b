package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/myniu/internal/telemetry/tracing"
	"github.com/2beens/myniu/pkg"
)

const psqlSchema = `
CREATE TABLE IF NOT EXISTS training
(
    id              SERIAL PRIMARY KEY,
    dt              VARCHAR(16)      NOT NULL,
    day             VARCHAR(10)      NOT NULL UNIQUE,
    duration_min    INTEGER          NOT NULL,
    calories        INTEGER          NOT NULL,
    avg_hr          INTEGER          NOT NULL,
    max_hr          INTEGER          NOT NULL,
    training_effect DOUBLE PRECISION NOT NULL,
    notes           TEXT             NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS ix_training_dt ON training (dt DESC);

CREATE TABLE IF NOT EXISTS daily_log
(
    date              VARCHAR(10) PRIMARY KEY,
    reading_minutes   INTEGER NOT NULL DEFAULT 0,
    water_glasses     INTEGER NOT NULL DEFAULT 0,
    kefir_glasses     INTEGER NOT NULL DEFAULT 0,
    no_phone_after_21 BOOLEAN NOT NULL DEFAULT FALSE,
    discipline_score  INTEGER,
    mood_score        INTEGER
);
`

// PsqlRepo is the Postgres backed Store.
type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) InitSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, psqlSchema); err != nil {
		return newStoreError("init schema", err)
	}
	return nil
}

// inTx runs fn inside a single transaction, committing on success.
func (r *PsqlRepo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

func (r *PsqlRepo) AddTraining(ctx context.Context, training Training) (_ *Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.training.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	training, err = prepareTraining(training)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("date", training.Date))

	err = r.inTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO training
				(dt, day, duration_min, calories, avg_hr, max_hr, training_effect, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
			training.Date, training.Day(), training.DurationMin, training.Calories,
			training.AvgHR, training.MaxHR, training.TrainingEffect, training.Notes,
		).Scan(&training.ID)
	})
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, &ConflictError{Date: training.Day()}
		}
		return nil, newStoreError("add training", err)
	}

	log.Tracef("training added: [%d] %s", training.ID, training.Date)
	return &training, nil
}

func (r *PsqlRepo) GetTraining(ctx context.Context, id int) (_ *Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	training := &Training{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, dt, duration_min, calories, avg_hr, max_hr, training_effect, notes
			FROM training
			WHERE id = $1;`, id).
		Scan(
			&training.ID, &training.Date, &training.DurationMin, &training.Calories,
			&training.AvgHR, &training.MaxHR, &training.TrainingEffect, &training.Notes,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, newStoreError("get training", err)
	}
	return training, nil
}

func (r *PsqlRepo) ListTrainings(ctx context.Context, params TrainingListParams) (_ []Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.training.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", params.Limit))

	from, to, err := normalizeRange(params.From, params.To)
	if err != nil {
		return nil, err
	}

	var limit *int
	if params.Limit > 0 {
		limit = &params.Limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, dt, duration_min, calories, avg_hr, max_hr, training_effect, notes
		FROM training
		WHERE ($1::text = '' OR day >= $1)
		  AND ($2::text = '' OR day <= $2)
		ORDER BY dt DESC, id DESC
		LIMIT $3;`,
		from, to, limit,
	)
	if err != nil {
		return nil, newStoreError("list trainings", err)
	}
	defer rows.Close()

	trainings := make([]Training, 0)
	for rows.Next() {
		var t Training
		if err := scanTraining(rows, &t); err != nil {
			return nil, newStoreError("list trainings", err)
		}
		trainings = append(trainings, t)
	}
	if err := rows.Err(); err != nil {
		return nil, newStoreError("list trainings", err)
	}

	return trainings, nil
}

func (r *PsqlRepo) DeleteTraining(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.training.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var deleted int64
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM training WHERE id = $1;`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return false, newStoreError("delete training", err)
	}
	return deleted > 0, nil
}

func (r *PsqlRepo) UpsertDailyField(ctx context.Context, date string, field Field, value int) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.daily.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("field", field.String()))

	date, err = prepareDailyUpsert(date, field, value)
	if err != nil {
		return nil, err
	}

	col := field.column()
	query := fmt.Sprintf(`
		INSERT INTO daily_log (date, %[1]s) VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET %[1]s = EXCLUDED.%[1]s
		RETURNING %[2]s;`, col, dailyLogColumns)

	return r.writeDailyLog(ctx, "upsert daily field", query, date, fieldArg(field, value))
}

func (r *PsqlRepo) IncrementDailyField(ctx context.Context, date string, field Field, delta int) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.daily.increment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("field", field.String()))

	date, err = prepareDailyIncrement(date, field, delta)
	if err != nil {
		return nil, err
	}

	col := field.column()
	query := fmt.Sprintf(`
		INSERT INTO daily_log (date, %[1]s) VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET %[1]s = LEAST(daily_log.%[1]s + EXCLUDED.%[1]s, %[3]d)
		RETURNING %[2]s;`, col, dailyLogColumns, field.max())

	return r.writeDailyLog(ctx, "increment daily field", query, date, delta)
}

func (r *PsqlRepo) writeDailyLog(ctx context.Context, op, query string, args ...any) (*DailyLog, error) {
	dailyLog := &DailyLog{}
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		return scanDailyLog(tx.QueryRow(ctx, query, args...), dailyLog)
	})
	if err != nil {
		return nil, newStoreError(op, err)
	}
	return dailyLog, nil
}

func (r *PsqlRepo) GetDailyLog(ctx context.Context, date string) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.daily.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date, err = NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	dailyLog := &DailyLog{}
	row := r.db.QueryRow(ctx, `SELECT `+dailyLogColumns+` FROM daily_log WHERE date = $1;`, date)
	if err := scanDailyLog(row, dailyLog); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &DailyLog{Date: date}, nil
		}
		return nil, newStoreError("get daily log", err)
	}
	return dailyLog, nil
}

func (r *PsqlRepo) ListDailyLogs(ctx context.Context, params DailyLogListParams) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.daily.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("from", params.From),
		attribute.String("to", params.To),
		attribute.Int("limit", params.Limit),
	)

	from, to, err := normalizeRange(params.From, params.To)
	if err != nil {
		return nil, err
	}

	var limit *int
	if params.Limit > 0 {
		limit = &params.Limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+dailyLogColumns+`
		FROM daily_log
		WHERE ($1::text = '' OR date >= $1)
		  AND ($2::text = '' OR date <= $2)
		ORDER BY date DESC
		LIMIT $3;`,
		from, to, limit,
	)
	if err != nil {
		return nil, newStoreError("list daily logs", err)
	}
	defer rows.Close()

	logs := make([]DailyLog, 0)
	for rows.Next() {
		var l DailyLog
		if err := scanDailyLog(rows, &l); err != nil {
			return nil, newStoreError("list daily logs", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, newStoreError("list daily logs", err)
	}

	return logs, nil
}
