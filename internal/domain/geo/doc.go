// Package geo implements the great-circle geometry used for geofence matching.
//
// Distances are computed with the haversine formula on a spherical Earth of
// mean radius 6,371,000 meters. The package has no dependencies on the rest
// of the domain so it can be used by entities, services and stores alike.
package geo
