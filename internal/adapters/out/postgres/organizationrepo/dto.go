// Package organizationrepo persists tenants and the people and places that
// belong to them: organizations, outlets and users.
package organizationrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// OrganizationDTO is the organizations row.
type OrganizationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Slug          string
	Email         string
	Phone         string
	BillingStatus string
	CreatedAt     time.Time
}

func (OrganizationDTO) TableName() string {
	return "organizations"
}

// OutletDTO is the outlets row. Latitude and longitude are both set or both NULL.
type OutletDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	Name           string
	ShortName      string
	Phone          string
	Whatsapp       string
	Address        string
	Latitude       *float64
	Longitude      *float64
}

func (OutletDTO) TableName() string {
	return "outlets"
}

// UserDTO is the users row. OrganizationID is NULL for customers and super admins.
type UserDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID *uuid.UUID `gorm:"type:uuid"`
	Role           string
	Email          string
	Phone          string
	FirstName      string
	LastName       string
	Address        string
	CreatedAt      time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func organizationFromDomain(o *organization.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:            o.ID().Bytes(),
		Name:          o.Name(),
		Slug:          o.Slug(),
		Email:         o.Email(),
		Phone:         o.Phone(),
		BillingStatus: o.BillingStatus().String(),
		CreatedAt:     o.CreatedAt(),
	}
}

func organizationToDomain(dto OrganizationDTO) (*organization.Organization, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	billing, err := organization.ParseBillingStatus(dto.BillingStatus)
	if err != nil {
		return nil, err
	}
	return organization.RestoreOrganization(id, dto.Name, dto.Slug, dto.Email, dto.Phone, billing, dto.CreatedAt)
}

func outletFromDomain(o *organization.Outlet) OutletDTO {
	dto := OutletDTO{
		ID:             o.ID().Bytes(),
		OrganizationID: o.OrganizationID().Bytes(),
		Name:           o.Name(),
		ShortName:      o.ShortName(),
		Phone:          o.Phone(),
		Whatsapp:       o.WhatsApp(),
		Address:        o.Address(),
	}
	if location := o.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}
	return dto
}

func outletToDomain(dto OutletDTO) (*organization.Outlet, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromGoogle(dto.OrganizationID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		location = &point
	}

	return organization.NewOutlet(id, organizationID, dto.Name, dto.ShortName, dto.Phone, dto.Whatsapp, dto.Address, location)
}

func userFromDomain(u *staff.User) UserDTO {
	dto := UserDTO{
		ID:        u.ID().Bytes(),
		Role:      u.Role().String(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Address:   u.Address(),
		CreatedAt: u.CreatedAt(),
	}
	if org := u.OrganizationID(); org != nil {
		id := org.Bytes()
		dto.OrganizationID = &id
	}
	return dto
}

func userToDomain(dto UserDTO) (*staff.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := staff.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var organizationID *kernel.UUID
	if dto.OrganizationID != nil {
		org, err := kernel.UUIDFromGoogle(*dto.OrganizationID)
		if err != nil {
			return nil, err
		}
		organizationID = &org
	}

	return staff.RestoreUser(id, organizationID, role, dto.Email, dto.Phone, dto.FirstName, dto.LastName, dto.Address, dto.CreatedAt)
}
