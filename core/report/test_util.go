package report

import (
	"context"
	"sort"
)

// in-memory store backing the service tests

type mockStore struct {
	reportPK   int
	settingsPK int

	reports       map[int]*Report
	settings      map[int]*Settings // keyed by course id
	courses       map[int]Course
	activityNames map[int]string
	userNames     map[int]string
}

var (
	_ Repository         = (*mockStore)(nil)
	_ SettingsRepository = (*mockStore)(nil)
	_ Directory          = (*mockStore)(nil)
)

func newMockStore() *mockStore {
	return &mockStore{
		reports:       make(map[int]*Report),
		settings:      make(map[int]*Settings),
		courses:       make(map[int]Course),
		activityNames: make(map[int]string),
		userNames:     make(map[int]string),
	}
}

func (s *mockStore) CreateReport(_ context.Context, rep Report) (Report, error) {
	s.reportPK++
	rep.ID = s.reportPK
	s.reports[rep.ID] = &rep
	return rep, nil
}

func (s *mockStore) GetCourseReport(_ context.Context, courseID, id int) (Report, error) {
	if rep, ok := s.reports[id]; ok && rep.CourseID == courseID {
		return *rep, nil
	}
	return Report{}, ErrNotFound
}

func (s *mockStore) QueryCourseReportRows(_ context.Context, courseID int) ([]Row, error) {
	rows := make([]Row, 0)
	for _, rep := range s.reports {
		if rep.CourseID != courseID {
			continue
		}
		rows = append(rows, Row{
			Report:       *rep,
			ActivityName: s.activityNames[rep.ActivityID],
			ReporterName: s.userNames[rep.ReportedBy],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ReportTime.Equal(rows[j].ReportTime) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].ReportTime.After(rows[j].ReportTime)
	})
	return rows, nil
}

func (s *mockStore) QueryActivityReports(_ context.Context, activityID int) ([]Report, error) {
	reps := make([]Report, 0)
	for _, rep := range s.reports {
		if rep.ActivityID == activityID {
			reps = append(reps, *rep)
		}
	}
	sort.SliceStable(reps, func(i, j int) bool { return reps[i].ID < reps[j].ID })
	return reps, nil
}

func (s *mockStore) UpdateReportStatus(_ context.Context, rep Report) (Report, error) {
	stored, ok := s.reports[rep.ID]
	if !ok {
		return Report{}, ErrNotFound
	}
	stored.Status = rep.Status
	stored.ResolvedBy = rep.ResolvedBy
	stored.ResolvedTime = rep.ResolvedTime
	return *stored, nil
}

func (s *mockStore) GetCourseSettings(_ context.Context, courseID int) (Settings, error) {
	if set, ok := s.settings[courseID]; ok {
		return *set, nil
	}
	return Settings{}, ErrSettingsNotFound
}

func (s *mockStore) UpsertCourseSettings(_ context.Context, set Settings) (Settings, error) {
	if existing, ok := s.settings[set.CourseID]; ok {
		existing.ReportEmail = set.ReportEmail
		existing.TimeModified = set.TimeModified
		return *existing, nil
	}
	s.settingsPK++
	set.ID = s.settingsPK
	s.settings[set.CourseID] = &set
	return set, nil
}

func (s *mockStore) GetCourseByID(_ context.Context, id int) (Course, error) {
	if course, ok := s.courses[id]; ok {
		return course, nil
	}
	return Course{}, ErrCourseNotFound
}
