package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error in this package unwraps to exactly one
// of these (the stage transition error unwraps to two), so callers classify
// failures with errors.Is without caring about the concrete type.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrInvalidStageTransition = errors.New("invalid stage transition")
	ErrTenantMismatch         = errors.New("tenant mismatch")
	ErrConcurrencyConflict    = errors.New("concurrency conflict")
	ErrIntegrity              = errors.New("integrity violation")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAlreadyExists          = errors.New("object already exists")
)

// ObjectNotFoundError is returned when a lookup by identifier finds nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError that keeps the
// underlying storage error for diagnostics.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a field whose value breaks a validation rule.
// ParamName is the offending field.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given field.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
	}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError carrying the
// rule that was broken.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside the inclusive [Min, Max] range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError with a cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory field.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given field.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
	}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError with a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// Transition subjects used by InvalidTransitionError.
const (
	SubjectOrderStatus    = "order status"
	SubjectItemStage      = "item stage"
	SubjectDispatchStatus = "dispatch status"
	SubjectDefect         = "defect"
	SubjectHandover       = "handover"
)

// InvalidTransitionError reports a state machine move that the adjacency
// table does not allow.
type InvalidTransitionError struct {
	Subject string
	From    string
	To      string
	Cause   error
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(subject, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Subject: subject,
		From:    from,
		To:      to,
	}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError with a cause.
func NewInvalidTransitionErrorWithCause(subject, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{
		Subject: subject,
		From:    from,
		To:      to,
		Cause:   cause,
	}
}

// NewInvalidStageTransitionError creates the item stage flavour of
// InvalidTransitionError. It matches both ErrInvalidTransition and
// ErrInvalidStageTransition.
func NewInvalidStageTransitionError(from, to string) *InvalidTransitionError {
	return NewInvalidTransitionError(SubjectItemStage, from, to)
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Subject, e.From, e.To)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() []error {
	if e.Subject == SubjectItemStage {
		return []error{ErrInvalidTransition, ErrInvalidStageTransition}
	}
	return []error{ErrInvalidTransition}
}

// TenantMismatchError is returned when an operation references an entity that
// belongs to a different organization.
type TenantMismatchError struct {
	Entity   string
	ID       any
	Expected any
	Actual   any
}

// NewTenantMismatchError creates a TenantMismatchError.
func NewTenantMismatchError(entity string, id, expected, actual any) *TenantMismatchError {
	return &TenantMismatchError{
		Entity:   entity,
		ID:       id,
		Expected: expected,
		Actual:   actual,
	}
}

func (e *TenantMismatchError) Error() string {
	return fmt.Sprintf("%s: %s %v belongs to organization %v, expected %v",
		ErrTenantMismatch, e.Entity, e.ID, e.Actual, e.Expected)
}

func (e *TenantMismatchError) Unwrap() error {
	return ErrTenantMismatch
}

// ConcurrencyConflictError is returned when an optimistic update loses the
// race: the row version changed between read and write.
type ConcurrencyConflictError struct {
	Entity  string
	ID      any
	Version int64
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError.
func NewConcurrencyConflictError(entity string, id any, version int64) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		Entity:  entity,
		ID:      id,
		Version: version,
	}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v was modified concurrently (expected version %d)",
		ErrConcurrencyConflict, e.Entity, e.ID, e.Version)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// IntegrityError reports stored data that breaks a cross-record rule, such as
// a broken custody chain. Such data is surfaced, never silently corrected.
type IntegrityError struct {
	Rule  string
	ID    any
	Cause error
}

// NewIntegrityError creates an IntegrityError for the given rule and record.
func NewIntegrityError(rule string, id any, cause error) *IntegrityError {
	return &IntegrityError{
		Rule:  rule,
		ID:    id,
		Cause: cause,
	}
}

func (e *IntegrityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s on %v (cause: %v)", ErrIntegrity, e.Rule, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s on %v", ErrIntegrity, e.Rule, e.ID)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// PermissionDeniedError is returned when the acting role may not perform an action.
type PermissionDeniedError struct {
	Role   string
	Action string
}

// NewPermissionDeniedError creates a PermissionDeniedError.
func NewPermissionDeniedError(role, action string) *PermissionDeniedError {
	return &PermissionDeniedError{
		Role:   role,
		Action: action,
	}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: role %s cannot %s", ErrPermissionDenied, e.Role, e.Action)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// AlreadyExistsError reports a uniqueness violation on ParamName.
type AlreadyExistsError struct {
	ParamName string
	Value     any
	Cause     error
}

// NewAlreadyExistsError creates an AlreadyExistsError.
func NewAlreadyExistsError(paramName string, value any) *AlreadyExistsError {
	return &AlreadyExistsError{
		ParamName: paramName,
		Value:     value,
	}
}

// NewAlreadyExistsErrorWithCause creates an AlreadyExistsError wrapping the
// driver error that detected the duplicate.
func NewAlreadyExistsErrorWithCause(paramName string, value any, cause error) *AlreadyExistsError {
	return &AlreadyExistsError{
		ParamName: paramName,
		Value:     value,
		Cause:     cause,
	}
}

func (e *AlreadyExistsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %v (cause: %v)", ErrAlreadyExists, e.ParamName, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %s is %v", ErrAlreadyExists, e.ParamName, e.Value)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
