package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Unavailable("geolocation lookup", cause)

	if !errors.Is(err, cause) {
		t.Error("DomainError should unwrap to its cause")
	}
	if got := err.Error(); got != "UNAVAILABLE: geolocation lookup: dial tcp: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if len(err.StackTrace()) == 0 {
		t.Error("expected a captured stack")
	}
}

func TestTypeOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("tool: %w", Cancelled("lookup superseded", nil))

	if TypeOf(err) != ErrTypeCancelled {
		t.Errorf("TypeOf = %q", TypeOf(err))
	}
	if !Is(err, ErrTypeCancelled) || Is(err, ErrTypeInternal) {
		t.Error("Is mismatch")
	}
	if TypeOf(errors.New("plain")) != "" {
		t.Error("plain errors have no type")
	}
	if !strings.HasPrefix(Internal("session: build tracker", nil).Error(), "INTERNAL: session: build tracker") {
		t.Error("message without cause is malformed")
	}
}
