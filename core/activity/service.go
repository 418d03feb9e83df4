package activity

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("activity not found")
)

type (
	Repository interface {
		CreateActivity(ctx context.Context, act Activity) (Activity, error)
		GetActivityByID(ctx context.Context, id int) (Activity, error)
		QueryCourseActivities(ctx context.Context, courseID int) ([]Activity, error)
		UpdateActivity(ctx context.Context, act Activity) (Activity, error)
		// DeleteActivity removes the activity and its broken-link reports.
		// Dependent report rows go first, in the same transaction.
		DeleteActivity(ctx context.Context, id int) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, na NewActivity) (Activity, error)
		GetByID(ctx context.Context, id int) (Activity, error)
		QueryByCourse(ctx context.Context, courseID int) ([]Activity, error)
		Update(ctx context.Context, id int, ua UpdateActivity) (Activity, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewActivity) (Activity, error) {
	act := Activity{
		CourseID:        na.CourseID,
		Name:            na.Name,
		Intro:           na.Intro,
		IntroFormat:     na.IntroFormat,
		ExternalURL:     na.ExternalURL,
		ShowLeave:       na.showLeave(),
		ShowDescription: na.ShowDescription,
		DetectYouTube:   na.DetectYouTube,
		TimeModified:    time.Now().UTC(),
	}
	return svc.repo.CreateActivity(ctx, act)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Activity, error) {
	return svc.repo.GetActivityByID(ctx, id)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID int) ([]Activity, error) {
	return svc.repo.QueryCourseActivities(ctx, courseID)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateActivity) (Activity, error) {
	orig, err := svc.repo.GetActivityByID(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	act := ua.apply(orig)
	act.TimeModified = time.Now().UTC()
	return svc.repo.UpdateActivity(ctx, act)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteActivity(ctx, id)
}
