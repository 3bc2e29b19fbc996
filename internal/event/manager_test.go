package event

import (
	"testing"
	"time"
)

func TestEmitEventReachesListener(t *testing.T) {
	received := make(chan interface{}, 1)
	AddEventListener(SettlementCompletedEvent, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(SettlementCompletedEvent, "settled")

	select {
	case msg := <-received:
		if msg != "settled" {
			t.Errorf("msg = %v, want settled", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("listener never received the event")
	}
}

func TestEmitEventSkipsOtherTypes(t *testing.T) {
	received := make(chan interface{}, 1)
	AddEventListener(SaleConfiguredEvent, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(ReserveFundedEvent, "funded")

	select {
	case msg := <-received:
		t.Errorf("listener received %v for a type it never registered", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
