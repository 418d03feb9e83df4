package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core/report"
)

type settingsRow struct {
	ID           int       `db:"id"`
	CourseID     int       `db:"course_id"`
	ReportEmail  string    `db:"report_email"`
	TimeModified time.Time `db:"time_modified"`
}

func (r settingsRow) toDomain() report.Settings {
	return report.Settings{
		ID:           r.ID,
		CourseID:     r.CourseID,
		ReportEmail:  r.ReportEmail,
		TimeModified: r.TimeModified,
	}
}

type settingsRepository struct {
	db *sqlx.DB
}

var _ report.SettingsRepository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (repo settingsRepository) GetCourseSettings(ctx context.Context, courseID int) (report.Settings, error) {
	var row settingsRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM course_report_settings WHERE course_id = $1`, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return report.Settings{}, report.ErrSettingsNotFound
		}
		return report.Settings{}, errors.Wrap(err, "getting course settings")
	}
	return row.toDomain(), nil
}

// UpsertCourseSettings relies on the unique course_id constraint: a duplicate
// insert under a concurrent first-time save resolves to an update of the
// existing row.
func (repo settingsRepository) UpsertCourseSettings(ctx context.Context, s report.Settings) (report.Settings, error) {
	query := `
		INSERT INTO course_report_settings (course_id, report_email, time_modified)
		VALUES ($1, $2, $3)
		ON CONFLICT (course_id) DO UPDATE
			SET report_email = EXCLUDED.report_email, time_modified = EXCLUDED.time_modified
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, s.CourseID, s.ReportEmail, s.TimeModified).Scan(&s.ID)
	if err != nil {
		return report.Settings{}, errors.Wrap(err, "upserting course settings")
	}
	return s, nil
}
