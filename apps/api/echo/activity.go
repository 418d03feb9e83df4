package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
)

type activityApi struct {
	svc        activity.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerActivityAPI(
	g *echo.Group,
	svc activity.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := activityApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	ag := g.Group("/activities")
	ag.POST("", api.create, capabilityMiddleware(core.CapAddInstance))
	ag.GET("/:id", api.retrieve, capabilityMiddleware(core.CapView))
	ag.PUT("/:id", api.update, capabilityMiddleware(core.CapAddInstance))
	ag.DELETE("/:id", api.destroy, capabilityMiddleware(core.CapAddInstance))

	g.GET("/courses/:courseID/activities", api.queryByCourse, capabilityMiddleware(core.CapView))
}

// Handlers

func (api *activityApi) create(ctx echo.Context) error {
	var data activity.NewActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewActivity")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	act, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating activity")
	}

	return ctx.JSON(http.StatusCreated, act)
}

func (api *activityApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	act, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting activity")
	}

	return ctx.JSON(http.StatusOK, NewActivityView(act))
}

func (api *activityApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data activity.UpdateActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateActivity")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	act, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating activity")
	}

	return ctx.JSON(http.StatusOK, act)
}

func (api *activityApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting activity")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (api *activityApi) queryByCourse(ctx echo.Context) error {
	courseID, err := pathID(ctx, "courseID")
	if err != nil {
		return err
	}

	acts, err := api.svc.QueryByCourse(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "querying course activities")
	}

	views := make([]ActivityView, len(acts))
	for i, act := range acts {
		views[i] = NewActivityView(act)
	}
	return ctx.JSON(http.StatusOK, views)
}

func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}
