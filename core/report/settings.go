package report

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// UpsertSettings saves the notification email for a course: the row is
// created lazily on first save and updated in place thereafter. The email
// must already be validated; an empty value disables notifications without
// deleting the row.
func (svc *Service) UpsertSettings(ctx context.Context, courseID int, email string) (Settings, error) {
	s := Settings{
		CourseID:     courseID,
		ReportEmail:  email,
		TimeModified: time.Now().UTC(),
	}
	return svc.settings.UpsertCourseSettings(ctx, s)
}

// GetSettings returns the course settings row, or ErrSettingsNotFound when
// the course was never configured.
func (svc *Service) GetSettings(ctx context.Context, courseID int) (Settings, error) {
	return svc.settings.GetCourseSettings(ctx, courseID)
}

// ResolveRecipient returns the configured notification email for the course,
// or "" when no row exists or the email was cleared. A missing row is not an
// error.
func (svc *Service) ResolveRecipient(ctx context.Context, courseID int) (string, error) {
	s, err := svc.settings.GetCourseSettings(ctx, courseID)
	if err != nil {
		if errors.Cause(err) == ErrSettingsNotFound {
			return "", nil
		}
		return "", err
	}
	return s.ReportEmail, nil
}
