// Package normalize translates each upstream service's status vocabulary
// into the canonical values of package status.
//
// Every function is pure and total: string inputs are matched
// case-insensitively, and anything outside a service's table maps to the
// family default (status.DownloadUnknown, status.MediaUnknown, or
// status.RequestPending for request codes). Optional qualifiers are passed
// as "" when the upstream record does not carry them.
package normalize
