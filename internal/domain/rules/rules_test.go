package rules

import (
	"testing"
	"time"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

func TestNoFutureDate(t *testing.T) {
	if err := NoFutureDate("date_detected", time.Now().AddDate(0, 0, -1)); err != nil {
		t.Errorf("past date should pass: %v", err)
	}

	err := NoFutureDate("date_detected", time.Now().AddDate(0, 0, 2))
	if err == nil {
		t.Fatal("expected error for future date")
	}
	if !domainerr.IsKind(err, domainerr.KindInvalidDate) {
		t.Errorf("expected KindInvalidDate, got %v", domainerr.KindOf(err))
	}
}

func TestNotBefore(t *testing.T) {
	dob := time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := NotBefore("date_detected", dob.AddDate(10, 0, 0), "date_of_birth", dob); err != nil {
		t.Errorf("later date should pass: %v", err)
	}

	err := NotBefore("date_detected", dob.AddDate(-1, 0, 0), "date_of_birth", dob)
	if err == nil {
		t.Fatal("expected error for date before floor")
	}
	if !domainerr.IsKind(err, domainerr.KindInvalidDate) {
		t.Errorf("expected KindInvalidDate, got %v", domainerr.KindOf(err))
	}
}

func TestRequireAssociation(t *testing.T) {
	if err := RequireAssociation(true, "cannot add a disease before patients are set"); err != nil {
		t.Errorf("present association should pass: %v", err)
	}

	err := RequireAssociation(false, "cannot add a disease before patients are set")
	if err == nil {
		t.Fatal("expected error for missing association")
	}
	if !domainerr.IsKind(err, domainerr.KindMissingPrecondition) {
		t.Errorf("expected KindMissingPrecondition, got %v", domainerr.KindOf(err))
	}
}
