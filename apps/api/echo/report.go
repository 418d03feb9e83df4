package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
	"github.com/campuskit/linkboard/core/report"
)

type reportApi struct {
	svc         report.ServiceInterface
	activitySvc activity.ServiceInterface
	validate    *validator.Validate
	translator  ut.Translator
}

func registerReportAPI(
	g *echo.Group,
	svc report.ServiceInterface,
	activitySvc activity.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := reportApi{
		svc:         svc,
		activitySvc: activitySvc,
		validate:    validate,
		translator:  translator,
	}

	g.POST("/activities/:id/report", api.submit, capabilityMiddleware(core.CapReportBroken))

	cg := g.Group("/courses/:courseID", capabilityMiddleware(core.CapViewReports))
	cg.GET("/reports", api.query)
	cg.PUT("/reports/:id", api.action)
	cg.GET("/report-settings", api.retrieveSettings)
	cg.PUT("/report-settings", api.updateSettings)
}

// Handlers

func (api *reportApi) submit(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}

	act, err := api.activitySvc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting activity")
	}

	rep, dispatch, err := api.svc.Submit(ctx.Request().Context(), actor, act)
	if err != nil {
		return errors.Wrap(err, "submitting report")
	}

	return ctx.JSON(http.StatusCreated, SubmitReportResponse{Report: rep, Dispatch: dispatch})
}

func (api *reportApi) query(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseID")
	if err != nil {
		return err
	}

	rows, err := api.svc.CourseReports(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "querying course reports")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *reportApi) action(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseID")
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}

	var data ReportActionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReportActionRequest")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	rep, err := api.svc.ApplyAction(ctx.Request().Context(), actor, courseID, id, data.Action)
	if err != nil {
		return errors.Wrap(err, "applying report action")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportApi) retrieveSettings(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseID")
	if err != nil {
		return err
	}

	s, err := api.svc.GetSettings(ctx.Request().Context(), courseID)
	if err != nil {
		if errors.Cause(err) == report.ErrSettingsNotFound {
			// no row yet; an empty form
			return ctx.JSON(http.StatusOK, report.Settings{CourseID: courseID})
		}
		return errors.Wrap(err, "getting report settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *reportApi) updateSettings(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseID")
	if err != nil {
		return err
	}

	var data report.NewSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSettings")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	s, err := api.svc.UpsertSettings(ctx.Request().Context(), courseID, data.ReportEmail)
	if err != nil {
		return errors.Wrap(err, "upserting report settings")
	}
	return ctx.JSON(http.StatusOK, s)
}
