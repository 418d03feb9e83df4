package echoapi

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campuskit/linkboard/core/activity"
	"github.com/campuskit/linkboard/core/report"
)

type SuccessResponse struct {
	Success string `json:"success"`
}

// ActivityView is an Activity enriched with presentation hints: the embedded
// video reference when detection matched and the external URL points at a
// known platform.
type ActivityView struct {
	activity.Activity
	Video *activity.VideoRef `json:"video,omitempty"`
}

// NewActivityView runs video detection on the activity when it is enabled.
func NewActivityView(act activity.Activity) ActivityView {
	view := ActivityView{Activity: act}
	if act.DetectYouTube {
		if ref, ok := activity.ClassifyVideoURL(act.ExternalURL); ok {
			view.Video = &ref
		}
	}
	return view
}

// SubmitReportResponse bundles the stored report with the outcome of the
// notification dispatch attempt.
type SubmitReportResponse struct {
	Report   report.Report         `json:"report"`
	Dispatch report.DispatchResult `json:"dispatch"`
}

type ReportActionRequest struct {
	Action string `json:"action" validate:"required"`
}

func (r *ReportActionRequest) Validate(validate *validator.Validate, translator ut.Translator) error {
	return validate.Struct(r)
}
