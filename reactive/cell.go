// Package reactive holds the minimal cell primitives the engine depends on:
// a mutable observable cell, a read-only view, and lazily recomputed derived
// values. Hosts with their own reactivity implement Cell and plug straight
// in; NewState is the built-in plain-observer implementation.
//
// Everything here is synchronous and single-threaded by contract: Set
// notifies subscribers before returning, and mutating a cell from inside one
// of its own subscribers is unsupported.
package reactive

// Readable is the read-only view of a cell.
type Readable[T any] interface {
	Get() T
}

// Cell is a mutable container observable for changes. Subscribe registers a
// callback invoked with the new and previous value on every Set; the
// returned func cancels the subscription.
type Cell[T any] interface {
	Get() T
	Set(v T)
	Subscribe(fn func(next, prev T)) (cancel func())
}

// State is the built-in Cell implementation.
type State[T any] struct {
	value T
	subs  []*subscriber[T]
}

type subscriber[T any] struct {
	fn func(next, prev T)
}

// NewState returns a State holding v.
func NewState[T any](v T) *State[T] { return &State[T]{value: v} }

// Get returns the current value.
func (s *State[T]) Get() T { return s.value }

// Set replaces the value and notifies subscribers in registration order.
// Notification walks a snapshot of the list, so a subscriber cancelling
// (itself or another) mid-delivery cannot skip or repeat anyone.
func (s *State[T]) Set(v T) {
	prev := s.value
	s.value = v
	subs := append([]*subscriber[T](nil), s.subs...)
	for _, sub := range subs {
		if sub.fn != nil {
			sub.fn(v, prev)
		}
	}
}

// Subscribe registers fn and returns its cancel func. Cancel is idempotent.
func (s *State[T]) Subscribe(fn func(next, prev T)) func() {
	sub := &subscriber[T]{fn: fn}
	s.subs = append(s.subs, sub)
	return func() {
		if sub.fn == nil {
			return
		}
		sub.fn = nil
		for i, cur := range s.subs {
			if cur == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Derive returns a Readable recomputed from fn on every Get; nothing is
// cached, so reads always reflect the cells fn closes over.
func Derive[T any](fn func() T) Readable[T] { return derived[T]{fn: fn} }

type derived[T any] struct {
	fn func() T
}

func (d derived[T]) Get() T { return d.fn() }
