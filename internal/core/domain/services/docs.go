// Package services provides domain services that coordinate business rules
// spanning several aggregates of the laundry domain.
//
// The package includes:
//   - DispatchCoordinator: validates, starts and completes dispatches together
//     with the items they carry and the handovers completion implies
//   - HandoverRecorder: records in-factory team transfers and moves the item
//
// Services never persist anything; command handlers load the aggregates, call
// a service and save the results in one unit of work.
package services
