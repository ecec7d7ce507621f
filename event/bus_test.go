package event_test

import (
	"testing"

	"github.com/guidepost/guidepost/event"
	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/step"
)

func testState() nav.State {
	return nav.State{
		SessionID:  "s1",
		Step:       step.Analysis,
		Transition: nav.TransitionPush,
	}
}

func TestBus_EmitDeliversToAllSubscribers(t *testing.T) {
	bus := event.NewBus()

	var got []event.Kind
	bus.Subscribe(func(n event.Notification) { got = append(got, n.Kind) })
	bus.Subscribe(func(n event.Notification) { got = append(got, n.Kind) })

	n := bus.Emit(event.KindPushed, testState())
	if n.ID.IsNil() {
		t.Error("Emit did not assign a notification ID")
	}
	if n.State.SessionID != "s1" {
		t.Errorf("notification state session = %q, want s1", n.State.SessionID)
	}
	if len(got) != 2 || got[0] != event.KindPushed || got[1] != event.KindPushed {
		t.Errorf("deliveries = %v, want two pushed", got)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := event.NewBus()

	calls := 0
	unsub := bus.Subscribe(func(event.Notification) { calls++ })
	bus.Emit(event.KindPushed, testState())
	unsub()
	bus.Emit(event.KindPopped, testState())

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if bus.Len() != 0 {
		t.Errorf("Len() = %d after unsubscribe, want 0", bus.Len())
	}
}

func TestBus_CloseDetachesEverything(t *testing.T) {
	bus := event.NewBus()

	calls := 0
	bus.Subscribe(func(event.Notification) { calls++ })
	bus.Subscribe(func(event.Notification) { calls++ })
	bus.Close()
	bus.Emit(event.KindPopped, testState())

	if calls != 0 {
		t.Errorf("calls = %d after Close, want 0", calls)
	}
}
