package report

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campuskit/linkboard/core"
)

// Status of a broken-link report.
type Status string

const (
	StatusOpen          Status = "open"
	StatusResolved      Status = "resolved"
	StatusFalsePositive Status = "false_positive"
)

// Moderator actions on a report.
const (
	ActionResolve       = "resolve"
	ActionFalsePositive = "falsepositive"
	ActionReopen        = "reopen"
)

// Report is a user-submitted flag that an activity's external URL is broken.
// Only the status fields ever change after creation.
type Report struct {
	ID           int        `json:"id"`
	ActivityID   int        `json:"activity_id"`
	CourseID     int        `json:"course_id"`
	CmID         int        `json:"cm_id"` // course-module instance reference
	URL          string     `json:"url"`   // snapshot of the activity URL at report time
	ReportedBy   int        `json:"reported_by"`
	ReportTime   time.Time  `json:"report_time"` // UTC
	Status       Status     `json:"status"`
	ResolvedBy   *int       `json:"resolved_by,omitempty"`
	ResolvedTime *time.Time `json:"resolved_time,omitempty"` // UTC
}

// Row is a dashboard line: the report joined with its owning activity's name
// and the reporter's display name.
type Row struct {
	Report
	ActivityName string `json:"activity_name"`
	ReporterName string `json:"reporter_name"`
}

// Settings is the single per-course record holding the notification recipient.
// An empty ReportEmail disables notifications without deleting the row.
type Settings struct {
	ID           int       `json:"id"`
	CourseID     int       `json:"course_id"`
	ReportEmail  string    `json:"report_email"`
	TimeModified time.Time `json:"time_modified"` // UTC
}

// NewSettings contains the course settings form values.
type NewSettings struct {
	ReportEmail string `json:"report_email" validate:"omitempty,email"`
}

func (ns *NewSettings) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.ReportEmail = core.CleanString(ns.ReportEmail, true /* lower */)
	return validate.Struct(ns)
}

// DispatchResult is the outcome of the notification attempt for a submission.
type DispatchResult string

const (
	DispatchSent           DispatchResult = "sent"
	DispatchSkippedNoEmail DispatchResult = "skipped_no_recipient"
	DispatchFailed         DispatchResult = "failed"
)

// Course is the host-owned course record, read through the Directory.
type Course struct {
	ID       int    `json:"id"`
	FullName string `json:"fullname"`
}
