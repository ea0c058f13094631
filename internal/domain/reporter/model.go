package reporter

import (
	"time"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// Reporter maps to the reporters table. Reporters are identified by email:
// submitting details with a known email updates that reporter in place.
type Reporter struct {
	ID               uuid.UUID `db:"id" json:"id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Email            string    `db:"email" json:"email"`
	JobTitle         *string   `db:"job_title" json:"job_title,omitempty"`
	PhoneNumber      *string   `db:"phone_number" json:"phone_number,omitempty"`
	HospitalName     *string   `db:"hospital_name" json:"hospital_name,omitempty"`
	HospitalAddress  *string   `db:"hospital_address" json:"hospital_address,omitempty"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
}

// Validate checks the fields required of every reporter.
func (r *Reporter) Validate() error {
	if r.FirstName == "" {
		return domainerr.New(domainerr.KindValidation, "first_name is required")
	}
	if r.LastName == "" {
		return domainerr.New(domainerr.KindValidation, "last_name is required")
	}
	if r.Email == "" {
		return domainerr.New(domainerr.KindValidation, "email is required")
	}
	return nil
}
