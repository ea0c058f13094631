package domainerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(KindNotFound, "report not found")
	if KindOf(err) != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("untyped errors should classify as internal")
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := New(KindConflict, "email already registered")
	outer := fmt.Errorf("signup: %w", inner)
	if KindOf(outer) != KindConflict {
		t.Error("kind should survive fmt.Errorf wrapping")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "store unavailable", cause)
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be found with errors.Is")
	}
	want := "store unavailable: connection refused"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(KindNotFound, "x"), http.StatusNotFound},
		{New(KindConflict, "x"), http.StatusConflict},
		{New(KindValidation, "x"), http.StatusBadRequest},
		{New(KindInvalidState, "x"), http.StatusBadRequest},
		{New(KindIncompleteAggregate, "x"), http.StatusBadRequest},
		{New(KindInvalidDate, "x"), http.StatusBadRequest},
		{New(KindMissingPrecondition, "x"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
