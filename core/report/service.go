package report

import (
	"context"
	"errors"
	"time"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
)

var (
	// errors
	ErrNotFound          = errors.New("report not found")
	ErrSettingsNotFound  = errors.New("course settings not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrInvalidTransition = errors.New("invalid report action")
)

type (
	Repository interface {
		CreateReport(ctx context.Context, rep Report) (Report, error)
		// GetCourseReport scopes the lookup to courseID so a moderator
		// can only act on reports of their own course.
		GetCourseReport(ctx context.Context, courseID, id int) (Report, error)
		// QueryCourseReportRows returns rows joined with activity and reporter
		// names, ordered by report time descending, then insertion order.
		QueryCourseReportRows(ctx context.Context, courseID int) ([]Row, error)
		QueryActivityReports(ctx context.Context, activityID int) ([]Report, error)
		// UpdateReportStatus writes status, resolved_by and resolved_time.
		// Last write wins on concurrent transitions.
		UpdateReportStatus(ctx context.Context, rep Report) (Report, error)
	}

	SettingsRepository interface {
		GetCourseSettings(ctx context.Context, courseID int) (Settings, error)
		// UpsertCourseSettings inserts the single per-course row or updates it
		// in place; a duplicate-insert race resolves to an update.
		UpsertCourseSettings(ctx context.Context, s Settings) (Settings, error)
	}

	// Directory exposes host-owned course records, read-only.
	Directory interface {
		GetCourseByID(ctx context.Context, id int) (Course, error)
	}

	ServiceInterface interface {
		Submit(ctx context.Context, actor core.Actor, act activity.Activity) (Report, DispatchResult, error)
		ApplyAction(ctx context.Context, actor core.Actor, courseID, reportID int, action string) (Report, error)
		CourseReports(ctx context.Context, courseID int) ([]Row, error)
		ActivityReports(ctx context.Context, activityID int) ([]Report, error)
		UpsertSettings(ctx context.Context, courseID int, email string) (Settings, error)
		GetSettings(ctx context.Context, courseID int) (Settings, error)
		ResolveRecipient(ctx context.Context, courseID int) (string, error)
	}

	Service struct {
		repo     Repository
		settings SettingsRepository
		dir      Directory
		mailSvc  core.EmailService
		conf     *core.Config
		logger   core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(
	repo Repository,
	settings SettingsRepository,
	dir Directory,
	mailSvc core.EmailService,
	conf *core.Config,
	logger core.Logger,
) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		dir:      dir,
		mailSvc:  mailSvc,
		conf:     conf,
		logger:   logger,
	}
}

// Submit creates an open report for the activity, snapshotting its current
// external URL, then attempts the notification dispatch exactly once before
// returning. A dispatch failure does not undo the persisted report; the
// outcome tells the caller what happened.
func (svc *Service) Submit(ctx context.Context, actor core.Actor, act activity.Activity) (Report, DispatchResult, error) {
	rep := Report{
		ActivityID: act.ID,
		CourseID:   act.CourseID,
		CmID:       act.ID,
		URL:        act.ExternalURL,
		ReportedBy: actor.ID,
		ReportTime: time.Now().UTC(),
		Status:     StatusOpen,
	}
	rep, err := svc.repo.CreateReport(ctx, rep)
	if err != nil {
		return Report{}, "", err
	}

	return rep, svc.dispatch(ctx, rep, act, actor), nil
}

type transition struct {
	to   Status
	from []Status
}

var transitions = map[string]transition{
	ActionResolve:       {to: StatusResolved, from: []Status{StatusOpen, StatusFalsePositive}},
	ActionFalsePositive: {to: StatusFalsePositive, from: []Status{StatusOpen, StatusResolved}},
	ActionReopen:        {to: StatusOpen, from: []Status{StatusResolved, StatusFalsePositive}},
}

// ApplyAction routes a moderator action to the matching status transition.
// Unknown actions and transitions outside the allowed table are rejected with
// ErrInvalidTransition and leave the report unchanged.
func (svc *Service) ApplyAction(ctx context.Context, actor core.Actor, courseID, reportID int, action string) (Report, error) {
	rep, err := svc.repo.GetCourseReport(ctx, courseID, reportID)
	if err != nil {
		return Report{}, err
	}

	tr, ok := transitions[action]
	if !ok || !statusIn(rep.Status, tr.from) {
		return Report{}, ErrInvalidTransition
	}

	rep.Status = tr.to
	if tr.to == StatusOpen {
		rep.ResolvedBy = nil
		rep.ResolvedTime = nil
	} else {
		now := time.Now().UTC()
		rep.ResolvedBy = &actor.ID
		rep.ResolvedTime = &now
	}
	return svc.repo.UpdateReportStatus(ctx, rep)
}

// CourseReports recomputes the dashboard rows from current storage state on
// every call; nothing is cached.
func (svc *Service) CourseReports(ctx context.Context, courseID int) ([]Row, error) {
	return svc.repo.QueryCourseReportRows(ctx, courseID)
}

func (svc *Service) ActivityReports(ctx context.Context, activityID int) ([]Report, error) {
	return svc.repo.QueryActivityReports(ctx, activityID)
}

func statusIn(s Status, in []Status) bool {
	for _, other := range in {
		if s == other {
			return true
		}
	}
	return false
}
