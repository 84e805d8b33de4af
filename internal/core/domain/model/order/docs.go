// Package order holds the Order aggregate of a laundry organization: the order
// status workflow, the items tracked through the factory and the payment ledger.
//
// The package includes:
//   - Order: the aggregate root; every change to items and payments goes through it
//   - Status: the order state machine with the on_hold and cancelled side states
//   - Item and Stage: per garment tracking with a role gated stage machine
//   - Payment: append only ledger entries, refunds included
//
// Key business rules:
//   - Orders move forward one status at a time; on_hold resumes to the held status only
//   - An order completes only when every item was picked up or marked damaged
//   - Item amounts are unit price times quantity and feed the order total
//   - The total never drops below what was already paid
//   - Overpayment is accepted only within the configured tolerance, as change due
//
// Mutations record domain events that the unit of work publishes after commit.
package order
