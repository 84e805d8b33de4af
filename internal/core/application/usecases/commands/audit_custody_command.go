package commands

import (
	"errors"
	"time"

	"laundry/internal/pkg/guard"
)

var ErrAuditCustodyCommandIsNotConstructed = errors.New(
	"AuditCustodyCommand must be created via NewAuditCustodyCommand constructor",
)

// AuditCustodyCommand re-checks the custody chain of every item handed over
// since the given instant. It is issued by the scheduler, not by a user.
type AuditCustodyCommand struct { //nolint:recvcheck //using for validation
	since time.Time

	guard guard.ConstructorGuard
}

// NewAuditCustodyCommand builds the command. The zero time audits the whole log.
func NewAuditCustodyCommand(since time.Time) AuditCustodyCommand {
	return AuditCustodyCommand{
		since: since.UTC(),
		guard: guard.NewConstructorGuard(),
	}
}

func (c AuditCustodyCommand) Validate() error {
	return c.guard.Validate(ErrAuditCustodyCommandIsNotConstructed)
}

func (c AuditCustodyCommand) Since() time.Time {
	return c.since
}
