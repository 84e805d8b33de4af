package staff

import (
	"errors"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// ErrUserIsNotConstructed is returned when a User was not created through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

var contactValidator = validator.New()

// User is a person known to the platform: organization staff, a platform
// super admin or a customer. Email and phone are unique across the platform.
type User struct {
	id             kernel.UUID
	organizationID *kernel.UUID
	role           Role
	email          string
	phone          string
	firstName      string
	lastName       string
	address        string
	createdAt      time.Time

	isConstructed bool
}

// NewUser validates and creates a user.
//
// Rules:
//   - email is required and must be a valid address
//   - phone is optional and must be in E.164 form (+233201234567) when given
//   - staff roles require an organization, customers and super admins have none
func NewUser(
	id kernel.UUID,
	organizationID *kernel.UUID,
	role Role,
	email, phone, firstName, lastName, address string,
	at time.Time,
) (*User, error) {
	u := &User{
		firstName:     strings.TrimSpace(firstName),
		lastName:      strings.TrimSpace(lastName),
		address:       strings.TrimSpace(address),
		createdAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setMembership(organizationID, role),
		u.setEmail(email),
		u.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user loaded from storage.
func RestoreUser(
	id kernel.UUID,
	organizationID *kernel.UUID,
	role Role,
	email, phone, firstName, lastName, address string,
	createdAt time.Time,
) (*User, error) {
	return NewUser(id, organizationID, role, email, phone, firstName, lastName, address, createdAt)
}

// Validate ensures the user was built through a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// OrganizationID returns the organization, nil for customers and super admins.
func (u *User) OrganizationID() *kernel.UUID {
	return u.organizationID
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) Address() string {
	return u.address
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// IsEqual compares users by identifier.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// Actor returns the identity this user acts with.
func (u *User) Actor() (Actor, error) {
	return NewActor(u.id, u.organizationID, u.role)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setMembership(organizationID *kernel.UUID, role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if err := validateMembership(organizationID, role); err != nil {
		return err
	}
	u.role = role
	u.organizationID = organizationID
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if err := contactValidator.Var(email, "email"); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		u.phone = ""
		return nil
	}
	if err := contactValidator.Var(phone, "e164"); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("phone", err)
	}
	u.phone = phone
	return nil
}
