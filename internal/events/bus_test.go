package events

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	b := NewBus(2)
	if !b.Publish(Event{Kind: PropertyCreated, PropertyID: 1}) {
		t.Fatal("publish into free buffer should succeed")
	}
	evt := <-b.Subscribe()
	if evt.Kind != PropertyCreated || evt.PropertyID != 1 {
		t.Fatalf("got %+v", evt)
	}
}

func TestBusFullBufferDrops(t *testing.T) {
	b := NewBus(1)
	if !b.Publish(Event{Kind: PropertyCreated, PropertyID: 1}) {
		t.Fatal("first publish should succeed")
	}
	if b.Publish(Event{Kind: PropertyCreated, PropertyID: 2}) {
		t.Fatal("full buffer must drop instead of blocking")
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var b *Bus
	if b.Publish(Event{Kind: PropertyUpdated, PropertyID: 3}) {
		t.Fatal("publishing to a nil bus should be a no-op")
	}
}
