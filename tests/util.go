package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
	"github.com/campuskit/linkboard/core/report"
	dummydb "github.com/campuskit/linkboard/storage/database/dummy"
)

// NewConfig returns the app configuration tuned for tests.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	return conf
}

// OpenDB returns a fresh in-memory database.
func OpenDB(t *testing.T) *dummydb.DB {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// ResetDB clears the in-memory database between tests.
func ResetDB(t *testing.T, db *dummydb.DB) {
	t.Helper()
	db.Reset()
}

func CreateActivity(
	t *testing.T,
	repo activity.Repository,
	courseID int,
	name, externalURL string,
	detectYouTube bool,
) activity.Activity {
	act := activity.Activity{
		CourseID:      courseID,
		Name:          name,
		ExternalURL:   externalURL,
		ShowLeave:     true,
		DetectYouTube: detectYouTube,
		TimeModified:  time.Now().UTC(),
	}
	act, err := repo.CreateActivity(context.Background(), act)
	if err != nil {
		t.Fatalf("CreateActivity() failed: %v", err)
	}
	return act
}

func CreateReport(
	t *testing.T,
	repo report.Repository,
	act activity.Activity,
	reportedBy int,
	reportTime ...time.Time,
) report.Report {
	tstamp := time.Now().UTC()
	if len(reportTime) > 0 {
		tstamp = reportTime[0].UTC()
	}
	rep := report.Report{
		ActivityID: act.ID,
		CourseID:   act.CourseID,
		CmID:       act.ID,
		URL:        act.ExternalURL,
		ReportedBy: reportedBy,
		ReportTime: tstamp,
		Status:     report.StatusOpen,
	}
	rep, err := repo.CreateReport(context.Background(), rep)
	if err != nil {
		t.Fatalf("CreateReport() failed: %v", err)
	}
	return rep
}

func CreateSettings(
	t *testing.T,
	repo report.SettingsRepository,
	courseID int,
	email string,
) report.Settings {
	s := report.Settings{
		CourseID:     courseID,
		ReportEmail:  email,
		TimeModified: time.Now().UTC(),
	}
	s, err := repo.UpsertCourseSettings(context.Background(), s)
	if err != nil {
		t.Fatalf("CreateSettings() failed: %v", err)
	}
	return s
}
