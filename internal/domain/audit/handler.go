package audit

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/pkg/pagination"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Audit trails stay senior-only.
	api.GET("/audit-logs", h.ListLogs, auth.RequireRole("senior"))
}

func (h *Handler) ListLogs(c echo.Context) error {
	pg := pagination.FromContext(c)

	var f Filter
	if v := c.QueryParam("start_date"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		f.Start = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		// Date-only bounds are inclusive of the whole day.
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.End = &t
	}

	logs, total, err := h.repo.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(logs, total, pg.Limit, pg.Offset))
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
