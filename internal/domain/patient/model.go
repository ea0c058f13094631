package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Patients exist independently of reports
// and may be linked to any number of them.
type Patient struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	FirstName           string    `db:"first_name" json:"first_name"`
	LastName            string    `db:"last_name" json:"last_name"`
	DateOfBirth         time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender              string    `db:"gender" json:"gender"`
	MedicalRecordNumber string    `db:"medical_record_number" json:"medical_record_number"`
	PatientAddress      *string   `db:"patient_address" json:"patient_address,omitempty"`
	EmergencyContact    *string   `db:"emergency_contact" json:"emergency_contact,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

var validGenders = map[string]bool{
	"Male":   true,
	"Female": true,
	"Other":  true,
}
