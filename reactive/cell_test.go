package reactive_test

import (
	"testing"

	"github.com/reoring/formskema/reactive"
)

func TestState_GetSet(t *testing.T) {
	s := reactive.NewState(1)
	if got := s.Get(); got != 1 {
		t.Fatalf("expected initial value 1, got %d", got)
	}
	s.Set(2)
	if got := s.Get(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestState_SubscribeReceivesNextAndPrev(t *testing.T) {
	s := reactive.NewState("a")
	var gotNext, gotPrev string
	calls := 0
	cancel := s.Subscribe(func(next, prev string) {
		gotNext, gotPrev = next, prev
		calls++
	})
	s.Set("b")
	if calls != 1 || gotNext != "b" || gotPrev != "a" {
		t.Fatalf("expected (b, a), got (%q, %q) calls=%d", gotNext, gotPrev, calls)
	}

	cancel()
	cancel() // idempotent
	s.Set("c")
	if calls != 1 {
		t.Fatalf("expected no call after cancel, got %d", calls)
	}
}

func TestState_MultipleSubscribersInOrder(t *testing.T) {
	s := reactive.NewState(0)
	var order []int
	s.Subscribe(func(next, prev int) { order = append(order, 1) })
	s.Subscribe(func(next, prev int) { order = append(order, 2) })
	s.Set(1)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected registration order, got %v", order)
	}
}

func TestState_CancelDuringNotifyKeepsDeliveryIntact(t *testing.T) {
	s := reactive.NewState(0)
	var order []string
	var cancelA func()
	cancelA = s.Subscribe(func(next, prev int) {
		order = append(order, "a")
		cancelA()
	})
	s.Subscribe(func(next, prev int) { order = append(order, "b") })
	s.Subscribe(func(next, prev int) { order = append(order, "c") })

	s.Set(1)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("expected every subscriber exactly once in order, got %v", order)
	}

	order = nil
	s.Set(2)
	if len(order) != 2 || order[0] != "b" || order[1] != "c" {
		t.Fatalf("expected cancelled subscriber dropped, got %v", order)
	}
}

func TestDerive_RecomputesPerRead(t *testing.T) {
	s := reactive.NewState(2)
	doubled := reactive.Derive(func() int { return s.Get() * 2 })
	if got := doubled.Get(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	s.Set(5)
	if got := doubled.Get(); got != 10 {
		t.Fatalf("expected derived read to follow the cell, got %d", got)
	}
}
