package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOverdueOrdersQueryHandler(db *gorm.DB) ListOverdueOrdersQueryHandler {
	return ListOverdueOrdersQueryHandler{db: db}
}

// Handle returns overdue orders, the longest overdue first.
func (h ListOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOverdueOrdersQuery,
) ([]OverdueOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("orders").
		Select("id, organization_id, outlet_id, bag_number, invoice_number, status, due_at, total_amount, amount_paid").
		Where("status NOT IN ?", []string{order.StatusCompleted.String(), order.StatusCancelled.String()}).
		Where("due_at < ?", query.Now()).
		Order("due_at, id")

	switch organizationID := query.OrganizationID(); {
	case organizationID != nil:
		if err := authorizeStaffRead(query.Actor(), *organizationID); err != nil {
			return nil, err
		}
		stmt = stmt.Where("organization_id = ?", organizationID.Bytes())
	case query.Actor().Role() != staff.SuperAdmin:
		return nil, errs.NewPermissionDeniedError(query.Actor().Role().String(), "list orders of every organization")
	}

	rows, err := stmt.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OverdueOrderView, 0)
	for rows.Next() {
		var (
			view                         OverdueOrderView
			id, organizationID, outletID uuid.UUID
			status                       string
			total, paid                  decimal.Decimal
		)
		if err = rows.Scan(
			&id,
			&organizationID,
			&outletID,
			&view.BagNumber,
			&view.InvoiceNumber,
			&status,
			&view.DueAt,
			&total,
			&paid,
		); err != nil {
			return nil, err
		}

		ids, idErr := toUUIDs(id, organizationID, outletID)
		if idErr != nil {
			return nil, idErr
		}
		view.ID, view.OrganizationID, view.OutletID = ids[0], ids[1], ids[2]

		if view.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		view.Overdue = query.Now().Sub(view.DueAt)
		view.AmountOutstanding = kernel.RestoreMoney(total).Sub(kernel.RestoreMoney(paid))

		orders = append(orders, view)
	}

	return orders, rows.Err()
}
