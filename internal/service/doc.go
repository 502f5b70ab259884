// Package service contains the geofenced matching and task lifecycle use
// cases. It composes the stores from internal/store with the haversine
// geometry of internal/domain/geo and an authenticated identity supplied by
// the transport layer.
//
// Three entry points read tasks, each with its own access rule:
//
//   - ProximityMatcher.Nearby is public and spans every owner.
//   - TaskLifecycleManager.ListOwned returns only the caller's tasks.
//   - TaskLifecycleManager.GetByID requires an identity but is not owner-scoped.
//
// Mutations of a task are restricted to its owner.
package service
