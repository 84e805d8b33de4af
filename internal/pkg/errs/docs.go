// Package errs provides the typed errors shared by every layer of the laundry
// service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) for errors.Is checks
//   - a struct type carrying the details (field name, identifiers, states)
//   - constructor functions with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// The families are:
//   - validation: ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError
//   - lookup: ObjectNotFoundError, AlreadyExistsError
//   - state machines: InvalidTransitionError (item stage moves also match
//     ErrInvalidStageTransition)
//   - cross-entity rules: TenantMismatchError, IntegrityError
//   - access: PermissionDeniedError
//   - optimistic locking: ConcurrencyConflictError
//
// The HTTP adapter maps the sentinels to status codes, so domain code never
// deals with transport concerns.
package errs
