package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core/report"
)

type reportRow struct {
	ID           int        `db:"id"`
	ActivityID   int        `db:"activity_id"`
	CourseID     int        `db:"course_id"`
	CmID         int        `db:"cm_id"`
	URL          string     `db:"url"`
	ReportedBy   int        `db:"reported_by"`
	ReportTime   time.Time  `db:"report_time"`
	Status       string     `db:"status"`
	ResolvedBy   *int       `db:"resolved_by"`
	ResolvedTime *time.Time `db:"resolved_time"`
}

type dashboardRow struct {
	reportRow
	ActivityName string `db:"activity_name"`
	ReporterName string `db:"reporter_name"`
}

func (r reportRow) toDomain() report.Report {
	return report.Report{
		ID:           r.ID,
		ActivityID:   r.ActivityID,
		CourseID:     r.CourseID,
		CmID:         r.CmID,
		URL:          r.URL,
		ReportedBy:   r.ReportedBy,
		ReportTime:   r.ReportTime,
		Status:       report.Status(r.Status),
		ResolvedBy:   r.ResolvedBy,
		ResolvedTime: r.ResolvedTime,
	}
}

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *sqlx.DB) *reportRepository {
	return &reportRepository{db: db}
}

func (repo reportRepository) CreateReport(ctx context.Context, rep report.Report) (report.Report, error) {
	query := `
		INSERT INTO broken_link_report
			(activity_id, course_id, cm_id, url, reported_by, report_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		rep.ActivityID, rep.CourseID, rep.CmID, rep.URL, rep.ReportedBy, rep.ReportTime, rep.Status,
	).Scan(&rep.ID)
	if err != nil {
		return report.Report{}, errors.Wrap(err, "inserting report")
	}
	return rep, nil
}

func (repo reportRepository) GetCourseReport(ctx context.Context, courseID, id int) (report.Report, error) {
	var row reportRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM broken_link_report WHERE id = $1 AND course_id = $2`, id, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return report.Report{}, report.ErrNotFound
		}
		return report.Report{}, errors.Wrap(err, "getting report")
	}
	return row.toDomain(), nil
}

func (repo reportRepository) QueryCourseReportRows(ctx context.Context, courseID int) ([]report.Row, error) {
	query := `
		SELECT r.*, a.name AS activity_name, u.name AS reporter_name
		FROM broken_link_report r
		JOIN link_activity a ON r.activity_id = a.id
		JOIN app_user u ON r.reported_by = u.id
		WHERE r.course_id = $1
		ORDER BY r.report_time DESC, r.id`
	var rows []dashboardRow
	if err := repo.db.SelectContext(ctx, &rows, query, courseID); err != nil {
		return nil, errors.Wrap(err, "querying course reports")
	}
	out := make([]report.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.Row{
			Report:       row.toDomain(),
			ActivityName: row.ActivityName,
			ReporterName: row.ReporterName,
		})
	}
	return out, nil
}

func (repo reportRepository) QueryActivityReports(ctx context.Context, activityID int) ([]report.Report, error) {
	var rows []reportRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM broken_link_report WHERE activity_id = $1 ORDER BY report_time DESC, id`, activityID)
	if err != nil {
		return nil, errors.Wrap(err, "querying activity reports")
	}
	out := make([]report.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (repo reportRepository) UpdateReportStatus(ctx context.Context, rep report.Report) (report.Report, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE broken_link_report SET status = $1, resolved_by = $2, resolved_time = $3 WHERE id = $4`,
		rep.Status, rep.ResolvedBy, rep.ResolvedTime, rep.ID,
	)
	if err != nil {
		return report.Report{}, errors.Wrap(err, "updating report status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return report.Report{}, report.ErrNotFound
	}
	return rep, nil
}
