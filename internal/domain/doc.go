// Package domain contains the core business entities, value objects, and
// domain logic of the application: locations with their geofences, tasks and
// their lifecycle, and the user identity the core acts on behalf of. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
