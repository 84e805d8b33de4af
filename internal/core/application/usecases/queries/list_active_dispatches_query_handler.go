package queries

import (
	"context"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListActiveDispatchesQueryHandler struct {
	db *gorm.DB
}

func NewListActiveDispatchesQueryHandler(db *gorm.DB) ListActiveDispatchesQueryHandler {
	return ListActiveDispatchesQueryHandler{db: db}
}

func (h ListActiveDispatchesQueryHandler) Handle(
	ctx context.Context,
	query ListActiveDispatchesQuery,
) ([]DispatchView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeStaffRead(query.Actor(), query.OrganizationID()); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	rows, err := db.Raw(`
		SELECT
			id,
			source_outlet_id,
			destination_outlet_id,
			status,
			requested_by,
			dispatcher_id,
			created_at,
			accepted_at,
			started_at,
			version
		FROM dispatch_requests
		WHERE organization_id = ?
		  AND status IN ?
		ORDER BY created_at, id
	`, query.OrganizationID().Bytes(), activeDispatchStatuses()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dispatches := make([]DispatchView, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			view                           DispatchView
			id, requestedBy                uuid.UUID
			source, destination, carrierID uuid.NullUUID
			status                         string
		)
		if err = rows.Scan(
			&id,
			&source,
			&destination,
			&status,
			&requestedBy,
			&carrierID,
			&view.CreatedAt,
			&view.AcceptedAt,
			&view.StartedAt,
			&view.Version,
		); err != nil {
			return nil, err
		}

		if view, err = fillDispatchView(view, id, requestedBy, source, destination, carrierID, status); err != nil {
			return nil, err
		}

		index[view.ID.String()] = len(dispatches)
		dispatches = append(dispatches, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(dispatches) == 0 {
		return dispatches, nil
	}
	if err = h.attachItems(db, dispatches, index); err != nil {
		return nil, err
	}

	return dispatches, nil
}

func (h ListActiveDispatchesQueryHandler) attachItems(db *gorm.DB, dispatches []DispatchView, index map[string]int) error {
	ids := make([]uuid.UUID, 0, len(dispatches))
	for _, d := range dispatches {
		ids = append(ids, d.ID.Bytes())
	}

	rows, err := db.Raw(`
		SELECT dispatch_id, item_id
		FROM dispatch_request_items
		WHERE dispatch_id IN ?
		ORDER BY dispatch_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dispatchID, itemID uuid.UUID
		if err = rows.Scan(&dispatchID, &itemID); err != nil {
			return err
		}

		id, idErr := kernel.UUIDFromGoogle(itemID)
		if idErr != nil {
			return idErr
		}
		at := index[dispatchID.String()]
		dispatches[at].ItemIDs = append(dispatches[at].ItemIDs, id)
	}

	return rows.Err()
}

func fillDispatchView(
	view DispatchView,
	id, requestedBy uuid.UUID,
	source, destination, carrierID uuid.NullUUID,
	status string,
) (DispatchView, error) {
	ids, err := toUUIDs(id, requestedBy)
	if err != nil {
		return view, err
	}
	view.ID, view.RequestedBy = ids[0], ids[1]

	sourceOutlet, err := optionalUUID(source)
	if err != nil {
		return view, err
	}
	if view.Source, err = dispatch.EndpointFromOutlet(sourceOutlet); err != nil {
		return view, err
	}
	destinationOutlet, err := optionalUUID(destination)
	if err != nil {
		return view, err
	}
	if view.Destination, err = dispatch.EndpointFromOutlet(destinationOutlet); err != nil {
		return view, err
	}
	if view.DispatcherID, err = optionalUUID(carrierID); err != nil {
		return view, err
	}
	if view.Status, err = dispatch.ParseStatus(status); err != nil {
		return view, err
	}
	view.ItemIDs = make([]kernel.UUID, 0)

	return view, nil
}

func activeDispatchStatuses() []string {
	return []string{
		dispatch.StatusPending.String(),
		dispatch.StatusAccepted.String(),
		dispatch.StatusInTransit.String(),
	}
}
