package domain

import (
	"errors"
	"testing"
)

func TestHasOperationalAccess(t *testing.T) {
	want := map[Role]bool{
		RoleDriver:      false,
		RoleOperator:    true,
		RoleSiteManager: true,
		RoleAdminLite:   true,
		RoleTechnician:  true,
		RoleGuest:       false,
	}
	if len(want) != len(Roles) {
		t.Fatalf("expected a case for each of the %d roles, got %d", len(Roles), len(want))
	}

	for _, r := range Roles {
		if got := HasOperationalAccess(r); got != want[r] {
			t.Errorf("HasOperationalAccess(%q) = %v, want %v", r, got, want[r])
		}
	}
}

func TestCanAdministerSuspensions(t *testing.T) {
	for _, r := range Roles {
		want := r == RoleSiteManager || r == RoleAdminLite
		if got := CanAdministerSuspensions(r); got != want {
			t.Errorf("CanAdministerSuspensions(%q) = %v, want %v", r, got, want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", r, err)
		}
		if got != r {
			t.Errorf("ParseRole(%q) = %q", r, got)
		}
	}

	if _, err := ParseRole("Superuser"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
