package staff

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Role is the job a user performs inside an organization. It decides which
// item stages the user may move items into and which operations they may run.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	SuperAdmin
	OrgAdmin
	Attendant
	Dispatcher
	Washer
	Dryer
	Ironer
	QCPackager
	Customer
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		SuperAdmin:  "super_admin",
		OrgAdmin:    "org_admin",
		Attendant:   "attendant",
		Dispatcher:  "dispatcher",
		Washer:      "washer",
		Dryer:       "dryer",
		Ironer:      "ironer",
		QCPackager:  "qc_packager",
		Customer:    "customer",
	}
}

// ParseRole converts the persisted code (e.g. "qc_packager") into a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != UnknownRole {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the persisted code of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects UnknownRole and out of range values.
func (r Role) Validate() error {
	if r <= UnknownRole || r > Customer {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsAdmin reports whether the role administers an organization or the platform.
func (r Role) IsAdmin() bool {
	return r == SuperAdmin || r == OrgAdmin
}

// IsStaff reports whether the role works for an organization.
func (r Role) IsStaff() bool {
	return r != Customer && r != SuperAdmin && r.Validate() == nil
}

// BelongsToOrganization reports whether users with this role must be linked
// to an organization. Customers and super admins are not.
func (r Role) BelongsToOrganization() bool {
	return r.IsStaff()
}
