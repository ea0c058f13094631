// Package reporting serves aggregate statistics over the outbreak data. The
// rollups are plain SQL against the live tables; nothing here mutates state.
package reporting

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
)

type Handler struct {
	pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/statistics", h.Statistics, auth.RequireRole("junior", "senior"))
}

type Summary struct {
	TotalReports       int            `json:"total_reports"`
	ReportsByStatus    map[string]int `json:"reports_by_status"`
	DiseasesByCategory map[string]int `json:"diseases_by_category"`
	DiseasesBySeverity map[string]int `json:"diseases_by_severity"`
	MostCommonDisease  *string        `json:"most_common_disease"`
	AveragePatientAge  *float64       `json:"average_patient_age"`
	GeneratedAt        time.Time      `json:"generated_at"`
}

func (h *Handler) Statistics(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.summarize(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) summarize(ctx context.Context) (*Summary, error) {
	s := &Summary{
		ReportsByStatus:    map[string]int{},
		DiseasesByCategory: map[string]int{},
		DiseasesBySeverity: map[string]int{},
		GeneratedAt:        time.Now().UTC(),
	}

	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&s.TotalReports); err != nil {
		return nil, err
	}

	if err := h.countBy(ctx, `SELECT status, COUNT(*) FROM reports GROUP BY status`, s.ReportsByStatus); err != nil {
		return nil, err
	}
	if err := h.countBy(ctx, `SELECT disease_category, COUNT(*) FROM diseases GROUP BY disease_category`, s.DiseasesByCategory); err != nil {
		return nil, err
	}
	if err := h.countBy(ctx, `SELECT severity_level, COUNT(*) FROM diseases GROUP BY severity_level`, s.DiseasesBySeverity); err != nil {
		return nil, err
	}

	var top string
	err := h.pool.QueryRow(ctx, `
		SELECT disease_name FROM diseases
		GROUP BY disease_name
		ORDER BY COUNT(*) DESC, disease_name
		LIMIT 1`).Scan(&top)
	switch {
	case err == nil:
		s.MostCommonDisease = &top
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}

	if err := h.pool.QueryRow(ctx, `
		SELECT AVG(EXTRACT(YEAR FROM AGE(date_of_birth)))::float8 FROM patients`,
	).Scan(&s.AveragePatientAge); err != nil {
		return nil, err
	}

	return s, nil
}

func (h *Handler) countBy(ctx context.Context, query string, into map[string]int) error {
	rows, err := h.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}
