package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrResolveActorQueryIsNotConstructed = errors.New(
	"ResolveActorQuery must be created via NewResolveActorQuery constructor",
)

// ResolveActorQuery turns an authenticated user id into the staff.Actor the
// commands act with. The HTTP layer runs it once per request.
type ResolveActorQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResolveActorQuery(userID kernel.UUID) (ResolveActorQuery, error) {
	if err := userID.Validate(); err != nil {
		return ResolveActorQuery{}, err
	}

	return ResolveActorQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ResolveActorQuery) Validate() error {
	return q.guard.Validate(ErrResolveActorQueryIsNotConstructed)
}

func (q ResolveActorQuery) UserID() kernel.UUID {
	return q.userID
}
