package organization

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var (
	// ErrOrganizationIsNotConstructed is returned when an Organization was not
	// created through NewOrganization or RestoreOrganization.
	ErrOrganizationIsNotConstructed = errors.New("Organization must be created via NewOrganization constructor")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Organization is the tenant: a laundry business with its own outlets, staff
// and orders. Every tenant-owned record points at exactly one organization.
type Organization struct {
	id            kernel.UUID
	name          string
	slug          string
	email         string
	phone         string
	billingStatus BillingStatus
	createdAt     time.Time

	isConstructed bool
}

// NewOrganization creates an organization in trial.
//
// The slug is the globally unique identifier used in URLs, lower case
// letters, digits and single dashes (e.g. "fresh-fold").
func NewOrganization(id kernel.UUID, name, slug, email, phone string, at time.Time) (*Organization, error) {
	return RestoreOrganization(id, name, slug, email, phone, Trial, at)
}

// RestoreOrganization rebuilds an organization from storage.
func RestoreOrganization(
	id kernel.UUID,
	name, slug, email, phone string,
	billingStatus BillingStatus,
	createdAt time.Time,
) (*Organization, error) {
	o := &Organization{
		email:         strings.TrimSpace(email),
		phone:         strings.TrimSpace(phone),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		o.setSlug(slug),
		o.setBillingStatus(billingStatus),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the organization was built through a constructor.
func (o *Organization) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrganizationIsNotConstructed
	}
	return nil
}

func (o *Organization) ID() kernel.UUID {
	return o.id
}

// OrganizationID returns the organization's own id so an organization can be
// passed wherever a kernel.Scoped is expected.
func (o *Organization) OrganizationID() kernel.UUID {
	return o.id
}

func (o *Organization) Name() string {
	return o.name
}

func (o *Organization) Slug() string {
	return o.slug
}

func (o *Organization) Email() string {
	return o.email
}

func (o *Organization) Phone() string {
	return o.phone
}

func (o *Organization) BillingStatus() BillingStatus {
	return o.billingStatus
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeBillingStatus records a new subscription standing.
func (o *Organization) ChangeBillingStatus(status BillingStatus) error {
	return o.setBillingStatus(status)
}

// EnsureAcceptsOrders fails when the organization is suspended.
func (o *Organization) EnsureAcceptsOrders() error {
	if !o.billingStatus.AllowsNewOrders() {
		return errs.NewValueIsInvalidErrorWithCause("billing_status",
			fmt.Errorf("organization %s is %s", o.slug, o.billingStatus))
	}
	return nil
}

func (o *Organization) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Organization) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	o.name = name
	return nil
}

func (o *Organization) setSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return errs.NewValueIsRequiredError("slug")
	}
	if !slugPattern.MatchString(slug) {
		return errs.NewValueIsInvalidErrorWithCause("slug", fmt.Errorf("%q must be lower case words joined by dashes", slug))
	}
	o.slug = slug
	return nil
}

func (o *Organization) setBillingStatus(status BillingStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.billingStatus = status
	return nil
}
