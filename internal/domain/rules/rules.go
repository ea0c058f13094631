// Package rules holds the pure validation rules shared by the domain
// services. Rules never touch the store; callers load whatever state a rule
// needs and pass it in.
package rules

import (
	"time"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// NoFutureDate rejects dates after the current instant.
func NoFutureDate(field string, d time.Time) error {
	if d.After(time.Now().UTC()) {
		return domainerr.Newf(domainerr.KindInvalidDate, "%s cannot be in the future", field)
	}
	return nil
}

// NotBefore rejects dates earlier than a named floor date.
func NotBefore(field string, d time.Time, floorField string, floor time.Time) error {
	if d.Before(floor) {
		return domainerr.Newf(domainerr.KindInvalidDate, "%s cannot be before %s", field, floorField)
	}
	return nil
}

// RequireAssociation rejects an operation whose required association is
// absent. The message names the missing piece.
func RequireAssociation(present bool, msg string) error {
	if !present {
		return domainerr.New(domainerr.KindMissingPrecondition, msg)
	}
	return nil
}
