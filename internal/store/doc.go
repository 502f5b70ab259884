// Package store defines the persistence contracts the core depends on:
// locations with their geofences, tasks, and user accounts. Implementations
// live under internal/platform and are injected at process start.
package store
