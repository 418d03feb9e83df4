package dummydb

import (
	"context"
	"sort"

	"github.com/campuskit/linkboard/core/report"
)

type reportRepository struct {
	db *DB
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) CreateReport(_ context.Context, rep report.Report) (report.Report, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.reportPK++
	rep.ID = repo.db.reportPK
	repo.db.reports[rep.ID] = &rep
	return rep, nil
}

func (repo *reportRepository) GetCourseReport(_ context.Context, courseID, id int) (report.Report, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rep, ok := repo.db.reports[id]; ok && rep.CourseID == courseID {
		return *rep, nil
	}
	return report.Report{}, report.ErrNotFound
}

func (repo *reportRepository) QueryCourseReportRows(_ context.Context, courseID int) ([]report.Row, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := make([]report.Row, 0)
	for _, rep := range repo.db.reports {
		if rep.CourseID != courseID {
			continue
		}
		row := report.Row{Report: *rep}
		if act, ok := repo.db.activities[rep.ActivityID]; ok {
			row.ActivityName = act.Name
		}
		if usr, ok := repo.db.users[rep.ReportedBy]; ok {
			row.ReporterName = usr.Name
		}
		rows = append(rows, row)
	}
	// most recent first, ties in insertion order
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ReportTime.Equal(rows[j].ReportTime) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].ReportTime.After(rows[j].ReportTime)
	})
	return rows, nil
}

func (repo *reportRepository) QueryActivityReports(_ context.Context, activityID int) ([]report.Report, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	reps := make([]report.Report, 0)
	for _, rep := range repo.db.reports {
		if rep.ActivityID == activityID {
			reps = append(reps, *rep)
		}
	}
	sort.SliceStable(reps, func(i, j int) bool {
		if reps[i].ReportTime.Equal(reps[j].ReportTime) {
			return reps[i].ID < reps[j].ID
		}
		return reps[i].ReportTime.After(reps[j].ReportTime)
	})
	return reps, nil
}

func (repo *reportRepository) UpdateReportStatus(_ context.Context, rep report.Report) (report.Report, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	stored, ok := repo.db.reports[rep.ID]
	if !ok {
		return report.Report{}, report.ErrNotFound
	}
	stored.Status = rep.Status
	stored.ResolvedBy = rep.ResolvedBy
	stored.ResolvedTime = rep.ResolvedTime
	return *stored, nil
}
