package dummydb

import (
	"context"

	"github.com/campuskit/linkboard/core/report"
)

type courseDirectory struct {
	db *DB
}

var _ report.Directory = (*courseDirectory)(nil) // interface compliance check

func NewCourseDirectory(db *DB) *courseDirectory {
	return &courseDirectory{db: db}
}

func (dir *courseDirectory) GetCourseByID(_ context.Context, id int) (report.Course, error) {
	dir.db.mutex.RLock()
	defer dir.db.mutex.RUnlock()

	if course, ok := dir.db.courses[id]; ok {
		return course, nil
	}
	return report.Course{}, report.ErrCourseNotFound
}
