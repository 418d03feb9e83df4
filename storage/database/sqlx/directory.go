package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core/report"
)

// courseDirectory reads the host-owned course table.
type courseDirectory struct {
	db *sqlx.DB
}

var _ report.Directory = (*courseDirectory)(nil) // interface compliance check

func NewCourseDirectory(db *sqlx.DB) *courseDirectory {
	return &courseDirectory{db: db}
}

func (dir courseDirectory) GetCourseByID(ctx context.Context, id int) (report.Course, error) {
	var course report.Course
	err := dir.db.GetContext(ctx, &course, `SELECT id, fullname FROM course WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return report.Course{}, report.ErrCourseNotFound
		}
		return report.Course{}, errors.Wrap(err, "getting course")
	}
	return course, nil
}
