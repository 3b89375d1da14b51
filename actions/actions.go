// Package actions groups the *arr REST operations by resource: calendar,
// command, queue, history, wanted and system. Every group is written against
// client.Requester so it can run on the real client or on a fake.
package actions

import (
	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
)

// Set bundles every action group for one service instance.
type Set struct {
	Service  arr.Service
	Calendar *Calendar
	Command  *Commands
	Queue    *Queue
	History  *History
	Wanted   *Wanted
	System   *System
}

// New builds all action groups on top of r.
func New(r client.Requester, service arr.Service) *Set {
	return &Set{
		Service:  service,
		Calendar: &Calendar{client: r},
		Command:  &Commands{client: r},
		Queue:    &Queue{client: r, service: service},
		History:  &History{client: r},
		Wanted:   &Wanted{client: r, service: service},
		System:   &System{client: r, service: service},
	}
}
