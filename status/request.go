package status

import "strings"

// Request is the canonical state of a user media request.
type Request string

const (
	RequestPending   Request = "pending"
	RequestApproved  Request = "approved"
	RequestRejected  Request = "rejected"
	RequestFulfilled Request = "fulfilled"
	RequestFailed    Request = "failed"
)

// AllRequest returns every request status in declaration order.
func AllRequest() []Request {
	return []Request{
		RequestPending,
		RequestApproved,
		RequestRejected,
		RequestFulfilled,
		RequestFailed,
	}
}

// ParseRequest returns the status for a wire value, or RequestPending.
func ParseRequest(s string) Request {
	r := Request(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range AllRequest() {
		if v == r {
			return r
		}
	}
	return RequestPending
}

func (r Request) String() string {
	return string(r)
}

func (r Request) IsPending() bool {
	return r == RequestPending
}

func (r Request) IsTerminal() bool {
	switch r {
	case RequestRejected, RequestFulfilled, RequestFailed:
		return true
	default:
		return false
	}
}

// IsSuccessful reports whether the request was accepted.
func (r Request) IsSuccessful() bool {
	return r == RequestApproved || r == RequestFulfilled
}

// NeedsAction reports whether an administrator has to act on the request.
func (r Request) NeedsAction() bool {
	return r == RequestPending
}

// Priority orders statuses for display, lower is more urgent.
func (r Request) Priority() int {
	switch r {
	case RequestFailed:
		return 1
	case RequestPending:
		return 2
	case RequestApproved:
		return 3
	case RequestRejected:
		return 4
	default:
		return 5
	}
}

func (r Request) Label() string {
	switch r {
	case RequestApproved:
		return "Approved"
	case RequestRejected:
		return "Rejected"
	case RequestFulfilled:
		return "Fulfilled"
	case RequestFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

func (r Request) ColorClass() string {
	switch r {
	case RequestApproved:
		return ColorBlue
	case RequestRejected, RequestFailed:
		return ColorRed
	case RequestFulfilled:
		return ColorGreen
	default:
		return ColorYellow
	}
}
