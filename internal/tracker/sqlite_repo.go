package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/myniu/internal/telemetry/tracing"
	"github.com/2beens/myniu/pkg"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS training (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	dt              TEXT    NOT NULL,
	day             TEXT    NOT NULL UNIQUE,
	duration_min    INTEGER NOT NULL,
	calories        INTEGER NOT NULL,
	avg_hr          INTEGER NOT NULL,
	max_hr          INTEGER NOT NULL,
	training_effect REAL    NOT NULL,
	notes           TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS ix_training_dt ON training (dt DESC);

CREATE TABLE IF NOT EXISTS daily_log (
	date              TEXT PRIMARY KEY,
	reading_minutes   INTEGER NOT NULL DEFAULT 0,
	water_glasses     INTEGER NOT NULL DEFAULT 0,
	kefir_glasses     INTEGER NOT NULL DEFAULT 0,
	no_phone_after_21 INTEGER NOT NULL DEFAULT 0,
	discipline_score  INTEGER,
	mood_score        INTEGER
);
`

// SqliteRepo is the Store backed by a local SQLite file.
type SqliteRepo struct {
	db *sql.DB
}

func NewSqliteRepo(db *sql.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

func (r *SqliteRepo) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return newStoreError("init schema", err)
	}
	return nil
}

func (r *SqliteRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit()
		}
	}()

	return fn(tx)
}

func (r *SqliteRepo) AddTraining(ctx context.Context, training Training) (_ *Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.training.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	training, err = prepareTraining(training)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("date", training.Date))

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO training
				(dt, day, duration_min, calories, avg_hr, max_hr, training_effect, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			training.Date, training.Day(), training.DurationMin, training.Calories,
			training.AvgHR, training.MaxHR, training.TrainingEffect, training.Notes,
		).Scan(&training.ID)
	})
	if err != nil {
		if pkg.IsSqliteUniqueViolation(err) {
			return nil, &ConflictError{Date: training.Day()}
		}
		return nil, newStoreError("add training", err)
	}

	log.Tracef("training added: [%d] %s", training.ID, training.Date)
	return &training, nil
}

func (r *SqliteRepo) GetTraining(ctx context.Context, id int) (_ *Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	training := &Training{}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, dt, duration_min, calories, avg_hr, max_hr, training_effect, notes
		FROM training
		WHERE id = ?`, id)
	if err := scanTraining(row, training); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, newStoreError("get training", err)
	}
	return training, nil
}

func (r *SqliteRepo) ListTrainings(ctx context.Context, params TrainingListParams) (_ []Training, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.training.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", params.Limit))

	from, to, err := normalizeRange(params.From, params.To)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dt, duration_min, calories, avg_hr, max_hr, training_effect, notes
		FROM training
		WHERE (?1 = '' OR day >= ?1)
		  AND (?2 = '' OR day <= ?2)
		ORDER BY dt DESC, id DESC
		LIMIT ?3`,
		from, to, sqliteLimit(params.Limit),
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

func (r *SqliteRepo) DeleteTraining(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.training.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var deleted int64
	err = r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM training WHERE id = ?`, id)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, newStoreError("delete training", err)
	}
	return deleted > 0, nil
}

func (r *SqliteRepo) UpsertDailyField(ctx context.Context, date string, field Field, value int) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.daily.upsert")
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
		INSERT INTO daily_log (date, %[1]s) VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET %[1]s = excluded.%[1]s
		RETURNING %[2]s`, col, dailyLogColumns)

	return r.writeDailyLog(ctx, "upsert daily field", query, date, fieldArg(field, value))
}

func (r *SqliteRepo) IncrementDailyField(ctx context.Context, date string, field Field, delta int) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.daily.increment")
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
		INSERT INTO daily_log (date, %[1]s) VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET %[1]s = MIN(daily_log.%[1]s + excluded.%[1]s, %[3]d)
		RETURNING %[2]s`, col, dailyLogColumns, field.max())

	return r.writeDailyLog(ctx, "increment daily field", query, date, delta)
}

func (r *SqliteRepo) writeDailyLog(ctx context.Context, op, query string, args ...any) (*DailyLog, error) {
	dailyLog := &DailyLog{}
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		return scanDailyLog(tx.QueryRowContext(ctx, query, args...), dailyLog)
	})
	if err != nil {
		return nil, newStoreError(op, err)
	}
	return dailyLog, nil
}

func (r *SqliteRepo) GetDailyLog(ctx context.Context, date string) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.daily.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date, err = NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	dailyLog := &DailyLog{}
	row := r.db.QueryRowContext(ctx, `SELECT `+dailyLogColumns+` FROM daily_log WHERE date = ?`, date)
	if err := scanDailyLog(row, dailyLog); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &DailyLog{Date: date}, nil
		}
		return nil, newStoreError("get daily log", err)
	}
	return dailyLog, nil
}

func (r *SqliteRepo) ListDailyLogs(ctx context.Context, params DailyLogListParams) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.daily.list")
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

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dailyLogColumns+`
		FROM daily_log
		WHERE (?1 = '' OR date >= ?1)
		  AND (?2 = '' OR date <= ?2)
		ORDER BY date DESC
		LIMIT ?3`,
		from, to, sqliteLimit(params.Limit),
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

// sqliteLimit maps "no limit" to -1, which SQLite treats as unbounded.
func sqliteLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
