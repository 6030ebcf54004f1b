package tracker

// scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDailyLog(row scanner, l *DailyLog) error {
	return row.Scan(
		&l.Date, &l.ReadingMinutes, &l.WaterGlasses, &l.KefirGlasses,
		&l.NoPhoneAfter21, &l.DisciplineScore, &l.MoodScore,
	)
}

func scanTraining(row scanner, t *Training) error {
	return row.Scan(
		&t.ID, &t.Date, &t.DurationMin, &t.Calories,
		&t.AvgHR, &t.MaxHR, &t.TrainingEffect, &t.Notes,
	)
}
