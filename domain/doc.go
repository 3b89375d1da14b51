// Package domain contains the service-independent records built from
// upstream payloads: download items, library media, user requests and system
// health. Statuses are always the canonical ones from package status.
//
// Each record has a ToMap method producing a snake_case map, and most have a
// matching FromMap constructor that accepts the same shape.
package domain
