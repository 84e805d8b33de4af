package commands

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/custody"
)

// AuditCustodyCommandHandler walks the custody log and reports broken chains.
// Nothing is written: a broken chain is surfaced, never repaired.
type AuditCustodyCommandHandler struct {
	uowFactory CustodyUoWFactory
}

func NewAuditCustodyCommandHandler(uowFactory CustodyUoWFactory) AuditCustodyCommandHandler {
	return AuditCustodyCommandHandler{uowFactory: uowFactory}
}

// Handle returns the joined IntegrityErrors of every broken chain, or the
// first storage error.
func (h AuditCustodyCommandHandler) Handle(ctx context.Context, command AuditCustodyCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	repo := h.uowFactory.Create().HandoverRepository()

	itemIDs, err := repo.ItemsHandedOverSince(ctx, command.Since())
	if err != nil {
		return err
	}

	var broken []error
	for _, itemID := range itemIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		chain, err := repo.ListForItem(ctx, itemID)
		if err != nil {
			return err
		}
		if err := custody.VerifyChain(itemID, chain); err != nil {
			broken = append(broken, err)
		}
	}

	return errors.Join(broken...)
}
