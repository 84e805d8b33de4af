package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListUnresolvedDefectsQueryHandler struct {
	db *gorm.DB
}

func NewListUnresolvedDefectsQueryHandler(db *gorm.DB) ListUnresolvedDefectsQueryHandler {
	return ListUnresolvedDefectsQueryHandler{db: db}
}

// Handle returns the open reports oldest first.
func (h ListUnresolvedDefectsQueryHandler) Handle(
	ctx context.Context,
	query ListUnresolvedDefectsQuery,
) ([]DefectView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeStaffRead(query.Actor(), query.OrganizationID()); err != nil {
		return nil, err
	}

	where := "organization_id = ? AND NOT resolved"
	args := []any{query.OrganizationID().Bytes()}
	if outletID := query.OutletID(); outletID != nil {
		where += " AND outlet_id = ?"
		args = append(args, outletID.Bytes())
	}

	return loadDefects(h.db.WithContext(ctx), where, args, "reported_at, id")
}
