package reporter

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wpnicholson/disease-outbreak/internal/domain/audit"
	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
	"github.com/wpnicholson/disease-outbreak/pkg/pagination"
)

// Handler exposes read and cleanup access to the reporter directory.
// Reporters are created and updated through the report endpoints.
type Handler struct {
	repo  Repository
	audit *audit.Recorder
}

func NewHandler(repo Repository, rec *audit.Recorder) *Handler {
	return &Handler{repo: repo, audit: rec}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("junior", "senior"))
	g.GET("/reporters", h.ListReporters)
	g.GET("/reporters/:id", h.GetReporter)
	api.DELETE("/reporters/:id", h.DeleteReporter, auth.RequireRole("senior"))
}

func (h *Handler) ListReporters(c echo.Context) error {
	pg := pagination.FromContext(c)
	recs, total, err := h.repo.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetReporter(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteReporter removes a reporter. Their reports go with them; the cascade
// lives in the schema.
func (h *Handler) DeleteReporter(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.repo.GetByID(ctx, id); err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	uid, _ := uuid.Parse(auth.UserIDFromContext(ctx))
	var actor *uuid.UUID
	if uid != uuid.Nil {
		actor = &uid
	}
	h.audit.Record(ctx, actor, audit.ActionDelete, "Reporter", &id, nil)
	return c.NoContent(http.StatusNoContent)
}
