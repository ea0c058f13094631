// Package export streams the full report dataset out of the API as JSON or
// CSV. Every export is written to the audit trail.
package export

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wpnicholson/disease-outbreak/internal/domain/audit"
	"github.com/wpnicholson/disease-outbreak/internal/domain/report"
	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
)

// exportLimit caps a single export. The dataset is small; this is a guard
// against unbounded result sets, not a paging scheme.
const exportLimit = 10000

type Handler struct {
	reports *report.Service
	audit   *audit.Recorder
}

func NewHandler(reports *report.Service, rec *audit.Recorder) *Handler {
	return &Handler{reports: reports, audit: rec}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/export/:format", h.Export, auth.RequireRole("junior", "senior"))
}

func (h *Handler) Export(c echo.Context) error {
	ctx := c.Request().Context()
	format := strings.ToLower(c.Param("format"))

	aggs, _, err := h.reports.ListReports(ctx, exportLimit, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var actor *uuid.UUID
	if uid, err := uuid.Parse(auth.UserIDFromContext(ctx)); err == nil {
		actor = &uid
	}

	switch format {
	case "json":
		h.audit.Record(ctx, actor, audit.ActionExport, "Report", nil,
			map[string]interface{}{"format": "json", "count": len(aggs)})
		return c.JSON(http.StatusOK, aggs)
	case "csv":
		h.audit.Record(ctx, actor, audit.ActionExport, "Report", nil,
			map[string]interface{}{"format": "csv", "count": len(aggs)})
		return h.writeCSV(c, aggs)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unsupported export format: %s", format))
	}
}

// writeCSV flattens each aggregate to one row per report. Patients collapse
// into a count; the disease and reporter contribute their headline fields.
func (h *Handler) writeCSV(c echo.Context, aggs []*report.Aggregate) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reports.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := []string{
		"report_id", "status", "created_at",
		"reporter_email", "hospital_name",
		"first_patient", "patient_count",
		"disease_name", "disease_category", "severity_level", "date_detected",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, agg := range aggs {
		row := []string{
			agg.ID.String(),
			string(agg.Status),
			agg.CreatedAt.Format("2006-01-02"),
			"", "", "",
			strconv.Itoa(len(agg.Patients)),
			"", "", "", "",
		}
		if agg.Reporter != nil {
			row[3] = agg.Reporter.Email
			if agg.Reporter.HospitalName != nil {
				row[4] = *agg.Reporter.HospitalName
			}
		}
		if len(agg.Patients) > 0 {
			p := agg.Patients[0]
			row[5] = p.FirstName + " " + p.LastName
		}
		if agg.Disease != nil {
			row[7] = agg.Disease.DiseaseName
			row[8] = agg.Disease.DiseaseCategory
			row[9] = agg.Disease.SeverityLevel
			row[10] = agg.Disease.DateDetected.Format("2006-01-02")
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
