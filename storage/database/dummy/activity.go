package dummydb

import (
	"context"
	"sort"

	"github.com/campuskit/linkboard/core/activity"
)

type activityRepository struct {
	db *DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) *activityRepository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) CreateActivity(_ context.Context, act activity.Activity) (activity.Activity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.activityPK++
	act.ID = repo.db.activityPK
	repo.db.activities[act.ID] = &act
	return act, nil
}

func (repo *activityRepository) GetActivityByID(_ context.Context, id int) (activity.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if act, ok := repo.db.activities[id]; ok {
		return *act, nil
	}
	return activity.Activity{}, activity.ErrNotFound
}

func (repo *activityRepository) QueryCourseActivities(_ context.Context, courseID int) ([]activity.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	acts := make([]activity.Activity, 0)
	for _, act := range repo.db.activities {
		if act.CourseID == courseID {
			acts = append(acts, *act)
		}
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].ID < acts[j].ID })
	return acts, nil
}

func (repo *activityRepository) UpdateActivity(_ context.Context, act activity.Activity) (activity.Activity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.activities[act.ID]; !ok {
		return activity.Activity{}, activity.ErrNotFound
	}
	repo.db.activities[act.ID] = &act
	return act, nil
}

func (repo *activityRepository) DeleteActivity(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.activities[id]; !ok {
		return activity.ErrNotFound
	}
	// dependent reports go first
	for rid, rep := range repo.db.reports {
		if rep.ActivityID == id {
			delete(repo.db.reports, rid)
		}
	}
	delete(repo.db.activities, id)
	return nil
}
