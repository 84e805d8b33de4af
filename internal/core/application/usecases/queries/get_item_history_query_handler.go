package queries

import (
	"context"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetItemHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetItemHistoryQueryHandler(db *gorm.DB) GetItemHistoryQueryHandler {
	return GetItemHistoryQueryHandler{db: db}
}

// Handle returns ObjectNotFound on "item" for unknown items. Customers are
// allowed to follow items of their own orders.
func (h GetItemHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetItemHistoryQuery,
) (*GetItemHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var (
		head struct {
			ID             uuid.UUID
			OrderID        uuid.UUID
			OrganizationID uuid.UUID
			CustomerID     uuid.NullUUID
			Description    string
			Stage          string
		}
		view GetItemHistoryQueryResponse
	)
	result := db.Raw(`
		SELECT
			i.id,
			i.order_id,
			i.organization_id,
			o.customer_id,
			i.description,
			i.stage
		FROM items i
		JOIN orders o ON o.id = i.order_id
		WHERE i.id = ?
	`, query.ItemID().Bytes()).Scan(&head)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("item", query.ItemID().String())
	}

	ids, err := toUUIDs(head.ID, head.OrderID, head.OrganizationID)
	if err != nil {
		return nil, err
	}
	customerID, err := optionalUUID(head.CustomerID)
	if err != nil {
		return nil, err
	}
	if err = authorizeOrderRead(query.Actor(), ids[2], customerID); err != nil {
		return nil, err
	}

	view.ItemID, view.OrderID, view.Description = ids[0], ids[1], head.Description
	if view.Stage, err = order.ParseStage(head.Stage); err != nil {
		return nil, err
	}

	if view.Handovers, err = h.loadHandovers(db, view.ItemID); err != nil {
		return nil, err
	}
	if view.Defects, err = loadDefects(db, "item_id = ?", []any{view.ItemID.Bytes()}, "reported_at, id"); err != nil {
		return nil, err
	}

	return &view, nil
}

func (h GetItemHistoryQueryHandler) loadHandovers(db *gorm.DB, itemID kernel.UUID) ([]HandoverView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			from_stage,
			to_stage,
			handed_over_by,
			received_by,
			handed_over_at,
			received_at
		FROM item_handovers
		WHERE item_id = ?
		ORDER BY handed_over_at, seq
	`, itemID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	handovers := make([]HandoverView, 0)
	for rows.Next() {
		var (
			handover         HandoverView
			id, handedOverBy uuid.UUID
			receivedBy       uuid.NullUUID
			from, to         string
		)
		if err = rows.Scan(
			&id,
			&from,
			&to,
			&handedOverBy,
			&receivedBy,
			&handover.HandedOverAt,
			&handover.ReceivedAt,
		); err != nil {
			return nil, err
		}

		ids, idErr := toUUIDs(id, handedOverBy)
		if idErr != nil {
			return nil, idErr
		}
		handover.ID, handover.HandedOverBy = ids[0], ids[1]

		if handover.ReceivedBy, err = optionalUUID(receivedBy); err != nil {
			return nil, err
		}
		if handover.FromStage, err = custody.ParseOptionalStage(from); err != nil {
			return nil, err
		}
		if handover.ToStage, err = custody.ParseStage(to); err != nil {
			return nil, err
		}

		handovers = append(handovers, handover)
	}

	return handovers, rows.Err()
}

// loadDefects reads defect reports matching a caller supplied filter. where
// and orderBy are fixed strings from this package, never user input.
func loadDefects(db *gorm.DB, where string, args []any, orderBy string) ([]DefectView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			item_id,
			order_id,
			outlet_id,
			type,
			stage_found,
			description,
			reported_by,
			reported_at,
			resolved,
			resolved_by,
			resolved_at,
			resolution_notes
		FROM defect_reports
		WHERE `+where+`
		ORDER BY `+orderBy, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defects := make([]DefectView, 0)
	for rows.Next() {
		var (
			view                                    DefectView
			id, itemID, orderID, outletID, reporter uuid.UUID
			resolvedBy                              uuid.NullUUID
			defectType, stage                       string
		)
		if err = rows.Scan(
			&id,
			&itemID,
			&orderID,
			&outletID,
			&defectType,
			&stage,
			&view.Description,
			&reporter,
			&view.ReportedAt,
			&view.Resolved,
			&resolvedBy,
			&view.ResolvedAt,
			&view.ResolutionNotes,
		); err != nil {
			return nil, err
		}

		ids, idErr := toUUIDs(id, itemID, orderID, outletID, reporter)
		if idErr != nil {
			return nil, idErr
		}
		view.ID, view.ItemID, view.OrderID, view.OutletID, view.ReportedBy = ids[0], ids[1], ids[2], ids[3], ids[4]

		if view.ResolvedBy, err = optionalUUID(resolvedBy); err != nil {
			return nil, err
		}
		if view.Type, err = defect.ParseType(defectType); err != nil {
			return nil, err
		}
		if view.StageFound, err = custody.ParseStage(stage); err != nil {
			return nil, err
		}

		defects = append(defects, view)
	}

	return defects, rows.Err()
}
