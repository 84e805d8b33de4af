package services

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"
)

// DispatchCoordinator is a domain service that keeps dispatches, the items
// they carry and the items' custody chains consistent with each other.
//
// Key responsibilities:
//   - Checking that a new dispatch only carries ready items of its own tenant
//   - Moving outbound items on the road when a dispatch starts
//   - Handing every item over to the receiving station when a dispatch completes
//
// Business rules:
//   - An item travels with at most one active dispatch
//   - Items going to the factory must be received; items going back must be
//     awaiting_dispatch_return
//   - Completion is all or nothing: if one item cannot be handed over, no
//     item moves and the dispatch stays in transit
//
// Example usage:
//
//	coordinator := services.NewDispatchCoordinator()
//	handovers, err := coordinator.Complete(d, orders, lastHandovers, kernel.NewUUID, dispatcher, now)
//	if err != nil {
//	    // nothing was changed
//	    return err
//	}
//	// persist d, orders and handovers in one transaction
type DispatchCoordinator struct{}

// NewDispatchCoordinator creates a new DispatchCoordinator instance.
func NewDispatchCoordinator() DispatchCoordinator {
	return DispatchCoordinator{}
}

// ValidateNew checks the cross-aggregate rules of a freshly requested dispatch.
//
// Parameters:
//   - d: the new dispatch
//   - outlet: the outlet end of the dispatch
//   - orders: the orders owning the dispatched items
//   - activeItemIDs: items already carried by another active dispatch
//
// Returns:
//   - error: TenantMismatch for foreign outlets or items, ObjectNotFound for
//     unknown items, ValueIsInvalid on "items" for busy or unready items
func (c DispatchCoordinator) ValidateNew(
	d *dispatch.Dispatch,
	outlet *organization.Outlet,
	orders []*order.Order,
	activeItemIDs []kernel.UUID,
) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := outlet.Validate(); err != nil {
		return err
	}
	if !outlet.ID().IsEqual(d.OutletID()) {
		return errs.NewValueIsInvalidErrorWithCause("outlet",
			fmt.Errorf("outlet %s is not an end of dispatch %s", outlet.ID(), d.ID()))
	}
	if err := kernel.EnsureSameTenant(d.OrganizationID(), kernel.RefOf("outlet", outlet)); err != nil {
		return err
	}

	busy := make(map[string]struct{}, len(activeItemIDs))
	for _, id := range activeItemIDs {
		busy[id.String()] = struct{}{}
	}

	items, err := c.itemsOf(d, orders)
	if err != nil {
		return err
	}

	required := d.RequiredItemStage()
	for _, ref := range items {
		if _, ok := busy[ref.item.ID().String()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s is already in an active dispatch", ref.item.ID()))
		}
		if ref.item.Stage() != required {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s is %s, %s dispatches need %s", ref.item.ID(), ref.item.Stage(), d.Direction(), required))
		}
	}

	return nil
}

// Start puts the dispatch on the road. Items travelling back to an outlet
// move from awaiting_dispatch_return to in_transit_to_outlet.
func (c DispatchCoordinator) Start(d *dispatch.Dispatch, orders []*order.Order, actor staff.Actor, at time.Time) error {
	items, err := c.itemsOf(d, orders)
	if err != nil {
		return err
	}

	outbound := d.Direction() == dispatch.FromFactory
	if outbound {
		for _, ref := range items {
			if err = ref.item.Stage().CanMoveTo(order.StageInTransitToOutlet); err != nil {
				return err
			}
		}
	}

	if err = d.Start(actor, at); err != nil {
		return err
	}

	if outbound {
		for _, ref := range items {
			if err = ref.order.MoveItemForCustody(ref.item.ID(), order.StageInTransitToOutlet, at); err != nil {
				return err
			}
		}
	}
	return nil
}

// Complete marks the dispatch delivered and creates the handover of every
// item to the receiving station, continuing each item's custody chain.
//
// Parameters:
//   - d: a dispatch in transit
//   - orders: the orders owning the dispatched items
//   - lastHandovers: latest handover per item id string, missing for items without one
//   - newID: identifier generator for the handovers
//
// Returns:
//   - []*custody.Handover: one handover per item, to be persisted with d
//   - error: nothing is changed when any item cannot be handed over
func (c DispatchCoordinator) Complete(
	d *dispatch.Dispatch,
	orders []*order.Order,
	lastHandovers map[string]*custody.Handover,
	newID func() kernel.UUID,
	actor staff.Actor,
	at time.Time,
) ([]*custody.Handover, error) {
	items, err := c.itemsOf(d, orders)
	if err != nil {
		return nil, err
	}

	type planned struct {
		ref    itemRef
		target order.Stage
		move   bool
	}

	station := d.HandoverStage()
	handovers := make([]*custody.Handover, 0, len(items))
	plan := make([]planned, 0, len(items))
	for _, ref := range items {
		previous := lastHandovers[ref.item.ID().String()]

		var from *custody.Stage
		if previous != nil {
			last := previous.ToStage()
			from = &last
		}

		h, err := custody.NewHandover(custody.HandoverParams{
			ID:             newID(),
			OrganizationID: d.OrganizationID(),
			OutletID:       d.OutletID(),
			ItemID:         ref.item.ID(),
			OrderID:        ref.order.ID(),
			From:           from,
			To:             station,
			HandedOverBy:   actor.UserID(),
		}, previous, at)
		if err != nil {
			return nil, fmt.Errorf("hand over item %s: %w", ref.item.ID(), err)
		}

		target, move, err := custody.ImpliedItemMove(station, ref.item.Stage())
		if err != nil {
			return nil, fmt.Errorf("hand over item %s: %w", ref.item.ID(), err)
		}

		handovers = append(handovers, h)
		plan = append(plan, planned{ref: ref, target: target, move: move})
	}

	if err = d.Complete(actor, at); err != nil {
		return nil, err
	}

	for _, p := range plan {
		if !p.move {
			continue
		}
		if err = p.ref.order.MoveItemForCustody(p.ref.item.ID(), p.target, at); err != nil {
			return nil, err
		}
	}

	return handovers, nil
}

type itemRef struct {
	order *order.Order
	item  *order.Item
}

// itemsOf resolves the dispatched items in dispatch order and checks their tenant.
func (c DispatchCoordinator) itemsOf(d *dispatch.Dispatch, orders []*order.Order) ([]itemRef, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	index := make(map[string]itemRef)
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		for _, item := range o.Items() {
			index[item.ID().String()] = itemRef{order: o, item: item}
		}
	}

	refs := make([]itemRef, 0, len(d.ItemIDs()))
	for _, id := range d.ItemIDs() {
		ref, ok := index[id.String()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		if err := kernel.EnsureSameTenant(d.OrganizationID(), kernel.RefOf("item", ref.item)); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
