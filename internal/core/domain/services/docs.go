// Package services provides domain services that orchestrate business
// operations across the order lifecycle. It implements logic that doesn't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - Lifecycle: A domain service mapping requested target statuses onto the
//     Order aggregate's named transitions
//
// Domain services stay pure; persistence and notification concerns live in
// the application layer.
package services
