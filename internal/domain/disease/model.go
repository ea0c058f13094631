package disease

import (
	"time"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// Disease maps to the diseases table. Each report carries at most one disease
// record; report_id is unique.
type Disease struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ReportID        uuid.UUID `db:"report_id" json:"report_id"`
	DiseaseName     string    `db:"disease_name" json:"disease_name"`
	DiseaseCategory string    `db:"disease_category" json:"disease_category"`
	DateDetected    time.Time `db:"date_detected" json:"date_detected"`
	Symptoms        []string  `db:"symptoms" json:"symptoms"`
	SeverityLevel   string    `db:"severity_level" json:"severity_level"`
	TreatmentStatus string    `db:"treatment_status" json:"treatment_status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

var validCategories = map[string]bool{
	"Bacterial": true,
	"Viral":     true,
	"Parasitic": true,
	"Other":     true,
}

var validSeverities = map[string]bool{
	"Low":      true,
	"Medium":   true,
	"High":     true,
	"Critical": true,
}

var validTreatmentStatuses = map[string]bool{
	"None":      true,
	"Ongoing":   true,
	"Completed": true,
}

func (d *Disease) Validate() error {
	if d.DiseaseName == "" {
		return domainerr.New(domainerr.KindValidation, "disease_name is required")
	}
	if !validCategories[d.DiseaseCategory] {
		return domainerr.Newf(domainerr.KindValidation, "invalid disease_category: %s", d.DiseaseCategory)
	}
	if d.DateDetected.IsZero() {
		return domainerr.New(domainerr.KindValidation, "date_detected is required")
	}
	if !validSeverities[d.SeverityLevel] {
		return domainerr.Newf(domainerr.KindValidation, "invalid severity_level: %s", d.SeverityLevel)
	}
	if d.TreatmentStatus == "" {
		d.TreatmentStatus = "None"
	}
	if !validTreatmentStatuses[d.TreatmentStatus] {
		return domainerr.Newf(domainerr.KindValidation, "invalid treatment_status: %s", d.TreatmentStatus)
	}
	return nil
}
