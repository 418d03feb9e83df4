package dummydb

import (
	"sync"

	"github.com/campuskit/linkboard/core/activity"
	"github.com/campuskit/linkboard/core/report"
)

// DB is an in-memory stand-in for the relational store, used in tests and
// local development.
type DB struct {
	mutex sync.RWMutex

	activityPK int
	reportPK   int
	settingsPK int

	activities map[int]*activity.Activity
	reports    map[int]*report.Report
	settings   map[int]*report.Settings // keyed by course id
	courses    map[int]report.Course
	users      map[int]directoryUser
}

type directoryUser struct {
	ID    int
	Name  string
	Email string
}

func Open() (*DB, error) {
	db := &DB{
		activities: make(map[int]*activity.Activity),
		reports:    make(map[int]*report.Report),
		settings:   make(map[int]*report.Settings),
		courses:    make(map[int]report.Course),
		users:      make(map[int]directoryUser),
	}
	return db, nil
}

// Reset drops all stored records, for reuse between tests.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.activityPK, db.reportPK, db.settingsPK = 0, 0, 0
	db.activities = make(map[int]*activity.Activity)
	db.reports = make(map[int]*report.Report)
	db.settings = make(map[int]*report.Settings)
	db.courses = make(map[int]report.Course)
	db.users = make(map[int]directoryUser)
}

// AddCourse seeds a host-owned course record.
func (db *DB) AddCourse(id int, fullname string) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.courses[id] = report.Course{ID: id, FullName: fullname}
}

// AddUser seeds a host-owned user record.
func (db *DB) AddUser(id int, name, email string) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.users[id] = directoryUser{ID: id, Name: name, Email: email}
}
