// Package kernel provides the value objects shared by every aggregate of the
// laundry domain.
//
// The package includes:
//   - UUID: identifier of every entity
//   - Money: two-decimal monetary amount backed by shopspring/decimal
//   - GeoPoint: validated outlet GPS position
//   - EnsureSameTenant: the one tenant-scoping check used by all write paths
//
// Value objects are immutable and safe for concurrent use.
package kernel
