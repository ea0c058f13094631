package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/internal/domain/disease"
	"github.com/wpnicholson/disease-outbreak/internal/domain/patient"
	"github.com/wpnicholson/disease-outbreak/internal/domain/reporter"
)

// Status is the report lifecycle state. Only draft reports accept changes.
type Status string

const (
	StatusDraft       Status = "Draft"
	StatusSubmitted   Status = "Submitted"
	StatusUnderReview Status = "Under Review"
	StatusApproved    Status = "Approved"
)

var validStatuses = map[Status]bool{
	StatusDraft:       true,
	StatusSubmitted:   true,
	StatusUnderReview: true,
	StatusApproved:    true,
}

// Report maps to the reports table.
type Report struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Status     Status     `db:"status" json:"status"`
	CreatedBy  *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	ReporterID *uuid.UUID `db:"reporter_id" json:"reporter_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// CanMutate reports whether the report still accepts edits to itself or its
// linked reporter, patients and disease.
func (r *Report) CanMutate() bool {
	return r.Status == StatusDraft
}

// Aggregate is a report with everything linked to it, as returned by reads
// and exports.
type Aggregate struct {
	*Report
	Reporter *reporter.Reporter `json:"reporter,omitempty"`
	Patients []*patient.Patient `json:"patients"`
	Disease  *disease.Disease   `json:"disease,omitempty"`
}

// SearchFilter narrows report searches. String fields match case-insensitive
// substrings.
type SearchFilter struct {
	Status       *Status
	DiseaseName  string
	HospitalName string
}
