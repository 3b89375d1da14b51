// Package value holds the small immutable value types shared by the domain
// records: FileSize, Duration, Progress, Timestamp and ID.
//
// Constructors validate their input and return an error for values that
// cannot exist (negative sizes or durations, blank identifiers). Arithmetic
// that could go below zero floors at zero instead.
package value
