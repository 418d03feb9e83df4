package report

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
)

// notificationData feeds the broken_link_report email templates.
type notificationData struct {
	SiteName      string
	CourseName    string
	CourseID      int
	ActivityName  string
	URL           string
	CmID          int
	ReporterName  string
	ReporterID    int
	ReporterEmail string
	ReportTime    string
}

// dispatch resolves the course recipient and attempts the notification email.
// No recipient is an expected outcome; a transport error is logged and
// reported as DispatchFailed, never raised, since the report is already
// persisted.
func (svc *Service) dispatch(ctx context.Context, rep Report, act activity.Activity, reporter core.Actor) DispatchResult {
	recipient, err := svc.ResolveRecipient(ctx, rep.CourseID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("resolving report recipient: %v", err), errors.Wrap(err, "resolving report recipient"), reporter)
		return DispatchFailed
	}
	if recipient == "" {
		return DispatchSkippedNoEmail
	}

	course, err := svc.dir.GetCourseByID(ctx, rep.CourseID)
	if err != nil {
		// the email is still worth sending; fall back to the bare id
		svc.logger.Warn(fmt.Sprintf("looking up course %d: %v", rep.CourseID, err))
		course = Course{ID: rep.CourseID}
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Address: recipient}},
		Subject:      "Broken link report: " + act.Name,
		TemplateName: "broken_link_report",
		TemplateData: notificationData{
			SiteName:      svc.conf.SiteName,
			CourseName:    course.FullName,
			CourseID:      rep.CourseID,
			ActivityName:  act.Name,
			URL:           rep.URL,
			CmID:          rep.CmID,
			ReporterName:  reporter.Name,
			ReporterID:    reporter.ID,
			ReporterEmail: reporter.Email,
			ReportTime:    rep.ReportTime.Format(time.RFC1123),
		},
	}
	if err := svc.mailSvc.SendMessage(ctx, msg); err != nil {
		svc.logger.Error(fmt.Sprintf("sending report notification: %v", err), errors.Wrap(err, "sending report notification"), reporter)
		return DispatchFailed
	}
	return DispatchSent
}
