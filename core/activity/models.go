package activity

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campuskit/linkboard/core"
)

// Activity is a course-embedded link to an external resource.
type Activity struct {
	ID              int       `json:"id"`
	CourseID        int       `json:"course_id"`
	Name            string    `json:"name"`
	Intro           string    `json:"intro"`
	IntroFormat     int       `json:"intro_format"`
	ExternalURL     string    `json:"external_url"`
	ShowLeave       bool      `json:"show_leave"`
	ShowDescription bool      `json:"show_description"`
	DetectYouTube   bool      `json:"detect_youtube"`
	TimeModified    time.Time `json:"time_modified"` // UTC
}

// Summary is what a user sees for the activity on the course page.
type Summary struct {
	Name  string `json:"name"`
	Intro string `json:"intro,omitempty"`
}

// Summary returns the course-page summary; the intro is only included
// when the instructor asked for the description to be shown.
func (a Activity) Summary() Summary {
	s := Summary{Name: a.Name}
	if a.ShowDescription && a.Intro != "" {
		s.Intro = a.Intro
	}
	return s
}

// NewActivity contains information needed to author a new Activity.
type NewActivity struct {
	CourseID        int    `json:"course_id" validate:"required"`
	Name            string `json:"name" validate:"required,max=255"`
	Intro           string `json:"intro"`
	IntroFormat     int    `json:"intro_format"`
	ExternalURL     string `json:"external_url" validate:"required,httpurl"`
	ShowLeave       *bool  `json:"show_leave"` // defaults to true when absent
	ShowDescription bool   `json:"show_description"`
	DetectYouTube   bool   `json:"detect_youtube"`
}

func (na *NewActivity) Validate(validate *validator.Validate, translator ut.Translator) error {
	na.Name = core.CleanString(na.Name)
	na.ExternalURL = core.CleanString(na.ExternalURL)
	return validate.Struct(na)
}

func (na *NewActivity) showLeave() bool {
	if na.ShowLeave == nil {
		return true
	}
	return *na.ShowLeave
}

// UpdateActivity defines what information may be provided to modify an existing Activity.
// Absent fields keep their current value.
type UpdateActivity struct {
	Name            string  `json:"name" validate:"omitempty,max=255"`
	Intro           *string `json:"intro"`
	IntroFormat     *int    `json:"intro_format"`
	ExternalURL     string  `json:"external_url" validate:"omitempty,httpurl"`
	ShowLeave       *bool   `json:"show_leave"`
	ShowDescription *bool   `json:"show_description"`
	DetectYouTube   *bool   `json:"detect_youtube"`
}

func (ua *UpdateActivity) Validate(validate *validator.Validate, translator ut.Translator) error {
	ua.Name = core.CleanString(ua.Name)
	ua.ExternalURL = core.CleanString(ua.ExternalURL)
	return validate.Struct(ua)
}

// apply merges the update into orig, leaving absent fields untouched.
func (ua *UpdateActivity) apply(orig Activity) Activity {
	act := orig
	if ua.Name != "" {
		act.Name = ua.Name
	}
	if ua.Intro != nil {
		act.Intro = *ua.Intro
	}
	if ua.IntroFormat != nil {
		act.IntroFormat = *ua.IntroFormat
	}
	if ua.ExternalURL != "" {
		act.ExternalURL = ua.ExternalURL
	}
	if ua.ShowLeave != nil {
		act.ShowLeave = *ua.ShowLeave
	}
	if ua.ShowDescription != nil {
		act.ShowDescription = *ua.ShowDescription
	}
	if ua.DetectYouTube != nil {
		act.DetectYouTube = *ua.DetectYouTube
	}
	return act
}
