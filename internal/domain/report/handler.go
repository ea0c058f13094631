package report

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wpnicholson/disease-outbreak/internal/domain/disease"
	"github.com/wpnicholson/disease-outbreak/internal/domain/patient"
	"github.com/wpnicholson/disease-outbreak/internal/domain/reporter"
	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
	"github.com/wpnicholson/disease-outbreak/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("junior", "senior"))
	g.POST("/reports", h.CreateReport)
	g.GET("/reports", h.ListReports)
	g.GET("/search", h.SearchReports)
	g.GET("/reports/:id", h.GetReport)
	g.PUT("/reports/:id", h.UpdateReportStatus)
	g.DELETE("/reports/:id", h.DeleteReport)
	g.POST("/reports/:id/submit", h.SubmitReport)

	g.POST("/reports/:id/reporter", h.AttachReporter)
	g.GET("/reports/:id/reporter", h.GetReporter)
	g.POST("/reports/:id/patients", h.ReplacePatients)
	g.GET("/reports/:id/patients", h.GetPatients)
	g.POST("/reports/:id/disease", h.AttachDisease)
	g.GET("/reports/:id/disease", h.GetDisease)
	g.DELETE("/reports/:id/disease", h.DetachDisease)
}

func reportID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}
	return id, nil
}

func (h *Handler) CreateReport(c echo.Context) error {
	rep, err := h.svc.CreateReport(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	agg, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, agg)
}

func (h *Handler) ListReports(c echo.Context) error {
	pg := pagination.FromContext(c)
	aggs, total, err := h.svc.ListReports(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(aggs, total, pg.Limit, pg.Offset))
}

func (h *Handler) SearchReports(c echo.Context) error {
	pg := pagination.FromContext(c)

	var f SearchFilter
	if v := c.QueryParam("status"); v != "" {
		st := Status(v)
		f.Status = &st
	}
	f.DiseaseName = c.QueryParam("disease_name")
	f.HospitalName = c.QueryParam("hospital_name")

	aggs, total, err := h.svc.Search(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(aggs, total, pg.Limit, pg.Offset))
}

type statusInput struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateReportStatus(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var in statusInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.UpdateReportStatus(c.Request().Context(), id, in.Status)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) DeleteReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReport(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SubmitReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	rep, err := h.svc.SubmitReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}

type reporterInput struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	JobTitle        *string `json:"job_title"`
	PhoneNumber     *string `json:"phone_number"`
	HospitalName    *string `json:"hospital_name"`
	HospitalAddress *string `json:"hospital_address"`
}

func (h *Handler) AttachReporter(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var in reporterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.AttachReporter(c.Request().Context(), id, &reporter.Reporter{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		JobTitle:        in.JobTitle,
		PhoneNumber:     in.PhoneNumber,
		HospitalName:    in.HospitalName,
		HospitalAddress: in.HospitalAddress,
	})
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetReporter(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetReporterForReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

type patientsInput struct {
	PatientIDs []uuid.UUID `json:"patient_ids"`
}

func (h *Handler) ReplacePatients(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var in patientsInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pats, err := h.svc.ReplacePatients(c.Request().Context(), id, in.PatientIDs)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	if pats == nil {
		pats = []*patient.Patient{}
	}
	return c.JSON(http.StatusOK, pats)
}

func (h *Handler) GetPatients(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	pats, err := h.svc.GetPatientsForReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pats)
}

type diseaseInput struct {
	DiseaseName     string   `json:"disease_name"`
	DiseaseCategory string   `json:"disease_category"`
	DateDetected    string   `json:"date_detected"`
	Symptoms        []string `json:"symptoms"`
	SeverityLevel   string   `json:"severity_level"`
	TreatmentStatus string   `json:"treatment_status"`
}

func (h *Handler) AttachDisease(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var in diseaseInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var detected time.Time
	if in.DateDetected != "" {
		detected, err = time.Parse("2006-01-02", in.DateDetected)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_detected must be YYYY-MM-DD")
		}
	}
	d, err := h.svc.AttachDisease(c.Request().Context(), id, &disease.Disease{
		DiseaseName:     in.DiseaseName,
		DiseaseCategory: in.DiseaseCategory,
		DateDetected:    detected,
		Symptoms:        in.Symptoms,
		SeverityLevel:   in.SeverityLevel,
		TreatmentStatus: in.TreatmentStatus,
	})
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetDisease(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDiseaseForReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DetachDisease(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DetachDisease(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(domainerr.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
