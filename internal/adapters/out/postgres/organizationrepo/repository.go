package organizationrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormOrganizationRepository implements ports.OrganizationRepository using GORM.
type GormOrganizationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOrganizationRepository(db *gorm.DB, tracker aggregateTracker) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db, tracker: tracker}
}

// Add inserts a new organization. A taken slug is AlreadyExists.
func (r *GormOrganizationRepository) Add(ctx context.Context, org *organization.Organization) error {
	if err := org.Validate(); err != nil {
		return err
	}

	dto := organizationFromDomain(org)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if constraint, ok := pgerr.UniqueViolation(err); ok {
			if constraint == "organizations_slug_key" {
				return errs.NewAlreadyExistsErrorWithCause("slug", org.Slug(), err)
			}
			return errs.NewAlreadyExistsErrorWithCause("organization", org.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(org.ID(), org)
	return nil
}

// Update writes the mutable columns: name, contact details and billing status.
func (r *GormOrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	if err := org.Validate(); err != nil {
		return err
	}

	dto := organizationFromDomain(org)
	result := r.db.WithContext(ctx).Model(&OrganizationDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "email", "phone", "billing_status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("organization", org.ID().String())
	}

	r.tracker.TrackAggregate(org.ID(), org)
	return nil
}

func (r *GormOrganizationRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Organization, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrganizationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("organization", id.String())
		}
		return nil, err
	}

	return organizationToDomain(dto)
}

// GormOutletRepository implements ports.OutletRepository using GORM.
type GormOutletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOutletRepository(db *gorm.DB, tracker aggregateTracker) *GormOutletRepository {
	return &GormOutletRepository{db: db, tracker: tracker}
}

// Add inserts a new outlet. An unknown organization is ObjectNotFound.
func (r *GormOutletRepository) Add(ctx context.Context, outlet *organization.Outlet) error {
	if err := outlet.Validate(); err != nil {
		return err
	}

	dto := outletFromDomain(outlet)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return errs.NewAlreadyExistsErrorWithCause("outlet", outlet.ID().String(), err)
		}
		if _, ok := pgerr.ForeignKeyViolation(err); ok {
			return errs.NewObjectNotFoundErrorWithCause("organization", outlet.OrganizationID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(outlet.ID(), outlet)
	return nil
}

func (r *GormOutletRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Outlet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OutletDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("outlet", id.String())
		}
		return nil, err
	}

	return outletToDomain(dto)
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{db: db, tracker: tracker}
}

// Add inserts a new user. Email and phone are unique across the platform.
func (r *GormUserRepository) Add(ctx context.Context, user *staff.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(user)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if constraint, ok := pgerr.UniqueViolation(err); ok {
			switch constraint {
			case "users_email_key":
				return errs.NewAlreadyExistsErrorWithCause("email", user.Email(), err)
			case "users_phone_key":
				return errs.NewAlreadyExistsErrorWithCause("phone", user.Phone(), err)
			default:
				return errs.NewAlreadyExistsErrorWithCause("user", user.ID().String(), err)
			}
		}
		if _, ok := pgerr.ForeignKeyViolation(err); ok {
			return errs.NewObjectNotFoundErrorWithCause("organization", user.OrganizationID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(user.ID(), user)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*staff.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return userToDomain(dto)
}
