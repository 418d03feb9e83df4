package main

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/report"
)

// setReportEmail updates or creates the course's notification settings.
// An empty email keeps the row but disables notifications.
func (cli *commandLine) setReportEmail(courseID int, email string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid email %q", email)
		}
	}

	s := report.Settings{
		CourseID:     courseID,
		ReportEmail:  email,
		TimeModified: time.Now().UTC(),
	}
	if _, err := cli.settingsRepo.UpsertCourseSettings(ctx, s); err != nil {
		return err
	}
	return nil
}
