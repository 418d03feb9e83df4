package dummydb

import (
	"context"

	"github.com/campuskit/linkboard/core/report"
)

type settingsRepository struct {
	db *DB
}

var _ report.SettingsRepository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetCourseSettings(_ context.Context, courseID int) (report.Settings, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.settings[courseID]; ok {
		return *s, nil
	}
	return report.Settings{}, report.ErrSettingsNotFound
}

func (repo *settingsRepository) UpsertCourseSettings(_ context.Context, s report.Settings) (report.Settings, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if existing, ok := repo.db.settings[s.CourseID]; ok {
		existing.ReportEmail = s.ReportEmail
		existing.TimeModified = s.TimeModified
		return *existing, nil
	}
	repo.db.settingsPK++
	s.ID = repo.db.settingsPK
	repo.db.settings[s.CourseID] = &s
	return s, nil
}
