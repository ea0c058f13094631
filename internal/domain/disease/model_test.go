package disease

import (
	"testing"
	"time"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

func validDisease() *Disease {
	return &Disease{
		DiseaseName:     "Measles",
		DiseaseCategory: "Viral",
		DateDetected:    time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		SeverityLevel:   "High",
		TreatmentStatus: "Ongoing",
	}
}

func TestValidate(t *testing.T) {
	if err := validDisease().Validate(); err != nil {
		t.Fatalf("valid disease rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Disease)
	}{
		{"missing name", func(d *Disease) { d.DiseaseName = "" }},
		{"bad category", func(d *Disease) { d.DiseaseCategory = "Fungal" }},
		{"missing date", func(d *Disease) { d.DateDetected = time.Time{} }},
		{"bad severity", func(d *Disease) { d.SeverityLevel = "Extreme" }},
		{"bad treatment status", func(d *Disease) { d.TreatmentStatus = "Cured" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDisease()
			tc.mutate(d)
			err := d.Validate()
			if !domainerr.IsKind(err, domainerr.KindValidation) {
				t.Errorf("expected KindValidation, got %v", err)
			}
		})
	}
}

func TestValidateDefaultsTreatmentStatus(t *testing.T) {
	d := validDisease()
	d.TreatmentStatus = ""
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.TreatmentStatus != "None" {
		t.Errorf("expected treatment_status to default to None, got %q", d.TreatmentStatus)
	}
}
