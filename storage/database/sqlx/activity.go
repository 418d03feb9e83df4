package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core/activity"
)

type activityRow struct {
	ID              int       `db:"id"`
	CourseID        int       `db:"course_id"`
	Name            string    `db:"name"`
	Intro           string    `db:"intro"`
	IntroFormat     int       `db:"intro_format"`
	ExternalURL     string    `db:"external_url"`
	ShowLeave       bool      `db:"show_leave"`
	ShowDescription bool      `db:"show_description"`
	DetectYouTube   bool      `db:"detect_youtube"`
	TimeModified    time.Time `db:"time_modified"`
}

func (r activityRow) toDomain() activity.Activity {
	return activity.Activity{
		ID:              r.ID,
		CourseID:        r.CourseID,
		Name:            r.Name,
		Intro:           r.Intro,
		IntroFormat:     r.IntroFormat,
		ExternalURL:     r.ExternalURL,
		ShowLeave:       r.ShowLeave,
		ShowDescription: r.ShowDescription,
		DetectYouTube:   r.DetectYouTube,
		TimeModified:    r.TimeModified,
	}
}

type activityRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *sqlx.DB) *activityRepository {
	return &activityRepository{db: db}
}

func (repo activityRepository) CreateActivity(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	query := `
		INSERT INTO link_activity
			(course_id, name, intro, intro_format, external_url, show_leave, show_description, detect_youtube, time_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		act.CourseID, act.Name, act.Intro, act.IntroFormat, act.ExternalURL,
		act.ShowLeave, act.ShowDescription, act.DetectYouTube, act.TimeModified,
	).Scan(&act.ID)
	if err != nil {
		return activity.Activity{}, errors.Wrap(err, "inserting activity")
	}
	return act, nil
}

func (repo activityRepository) GetActivityByID(ctx context.Context, id int) (activity.Activity, error) {
	var row activityRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM link_activity WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return activity.Activity{}, activity.ErrNotFound
		}
		return activity.Activity{}, errors.Wrap(err, "getting activity")
	}
	return row.toDomain(), nil
}

func (repo activityRepository) QueryCourseActivities(ctx context.Context, courseID int) ([]activity.Activity, error) {
	var rows []activityRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM link_activity WHERE course_id = $1 ORDER BY id`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying course activities")
	}
	acts := make([]activity.Activity, 0, len(rows))
	for _, row := range rows {
		acts = append(acts, row.toDomain())
	}
	return acts, nil
}

func (repo activityRepository) UpdateActivity(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	query := `
		UPDATE link_activity
		SET name = $1, intro = $2, intro_format = $3, external_url = $4,
			show_leave = $5, show_description = $6, detect_youtube = $7, time_modified = $8
		WHERE id = $9`
	res, err := repo.db.ExecContext(ctx, query,
		act.Name, act.Intro, act.IntroFormat, act.ExternalURL,
		act.ShowLeave, act.ShowDescription, act.DetectYouTube, act.TimeModified, act.ID,
	)
	if err != nil {
		return activity.Activity{}, errors.Wrap(err, "updating activity")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return activity.Activity{}, activity.ErrNotFound
	}
	return act, nil
}

// DeleteActivity removes the dependent report rows first, then the activity,
// in a single transaction.
func (repo activityRepository) DeleteActivity(ctx context.Context, id int) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning delete transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM broken_link_report WHERE activity_id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting activity reports")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM link_activity WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting activity")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return activity.ErrNotFound
	}
	return errors.Wrap(tx.Commit(), "committing delete transaction")
}
