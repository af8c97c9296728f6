// Package rawdata pages through the records of a trip view one at a time
// under caller control.
package rawdata

import (
	"errors"
	"fmt"

	"bikeshare/pkg/contracts/domain"
)

// ErrNotStarted is returned by Next before Begin accepted browsing
var ErrNotStarted = errors.New("paginator not started")

// Source is what the paginator reads; *trips.View satisfies it
type Source interface {
	Len() int
	Record(i int) domain.TripRecord
	HasDemographics() bool
}

// State is the paginator state
type State int

const (
	// StateIdle waits for the begin decision
	StateIdle State = iota
	// StateBrowsing emits a record on every Next
	StateBrowsing
	// StateHalted is terminal
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBrowsing:
		return "browsing"
	case StateHalted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HaltReason tells why browsing ended
type HaltReason int

const (
	// HaltNone means the paginator has not halted
	HaltNone HaltReason = iota
	// HaltDeclined means the caller declined to begin or continue
	HaltDeclined
	// HaltExhausted means every record was emitted
	HaltExhausted
)

// Step is the outcome of one Next call: either a record or the halt
type Step struct {
	// Number is the 1-based position of Record in the view
	Number int
	Record domain.TripRecord
	Fields []domain.Field

	Halted bool
	Reason HaltReason
	// Notice is set when the view was exhausted, e.g. "3 was the last record."
	Notice string
}

// Paginator is a cursor over a view. It is not safe for concurrent use.
type Paginator struct {
	source Source
	state  State
	n      int
	halt   Step
}

// New creates an idle paginator over source
func New(source Source) *Paginator {
	return &Paginator{source: source}
}

// Begin applies the initial "do you want to begin" decision. Declining
// halts without emitting anything. Calling Begin after the first call has
// no effect.
func (p *Paginator) Begin(accept bool) State {
	if p.state != StateIdle {
		return p.state
	}
	if !accept {
		p.haltWith(Step{Halted: true, Reason: HaltDeclined})
		return p.state
	}
	p.state = StateBrowsing
	return p.state
}

// Next emits the next record, or the halt step once all records were
// emitted. After halting it keeps returning the same halt step.
func (p *Paginator) Next() (Step, error) {
	switch p.state {
	case StateIdle:
		return Step{}, ErrNotStarted
	case StateHalted:
		return p.halt, nil
	}

	if p.n >= p.source.Len() {
		p.haltWith(Step{
			Halted: true,
			Reason: HaltExhausted,
			Notice: LastRecordNotice(p.n),
		})
		return p.halt, nil
	}

	record := p.source.Record(p.n)
	p.n++
	return Step{
		Number: p.n,
		Record: record,
		Fields: record.Fields(p.source.HasDemographics()),
	}, nil
}

// Stop halts on the caller declining to continue
func (p *Paginator) Stop() Step {
	if p.state != StateHalted {
		p.haltWith(Step{Halted: true, Reason: HaltDeclined})
	}
	return p.halt
}

// Remaining returns how many records have not been emitted yet
func (p *Paginator) Remaining() int {
	return p.source.Len() - p.n
}

// State returns the current state
func (p *Paginator) State() State { return p.state }

// Emitted returns how many records have been emitted
func (p *Paginator) Emitted() int { return p.n }

func (p *Paginator) haltWith(s Step) {
	p.state = StateHalted
	p.halt = s
}

// LastRecordNotice is the terminal notice after n records
func LastRecordNotice(n int) string {
	return fmt.Sprintf("%d was the last record.", n)
}
