package queries

import (
	"context"

	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResolveActorQueryHandler struct {
	db *gorm.DB
}

func NewResolveActorQueryHandler(db *gorm.DB) ResolveActorQueryHandler {
	return ResolveActorQueryHandler{db: db}
}

// Handle returns ObjectNotFound on "user" for unknown ids.
func (h ResolveActorQueryHandler) Handle(ctx context.Context, query ResolveActorQuery) (staff.Actor, error) {
	if err := query.Validate(); err != nil {
		return staff.Actor{}, err
	}

	var row struct {
		OrganizationID uuid.NullUUID
		Role           string
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT organization_id, role
		FROM users
		WHERE id = ?
	`, query.UserID().Bytes()).Scan(&row)
	if result.Error != nil {
		return staff.Actor{}, result.Error
	}
	if result.RowsAffected == 0 {
		return staff.Actor{}, errs.NewObjectNotFoundError("user", query.UserID().String())
	}

	role, err := staff.ParseRole(row.Role)
	if err != nil {
		return staff.Actor{}, err
	}
	organizationID, err := optionalUUID(row.OrganizationID)
	if err != nil {
		return staff.Actor{}, err
	}

	return staff.NewActor(query.UserID(), organizationID, role)
}
