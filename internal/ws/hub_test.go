package ws

import (
	"encoding/json"
	"testing"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
)

func testClient(hub *Hub, actorID, role string) *Client {
	return &Client{
		hub:     hub,
		send:    make(chan []byte, 8),
		ActorID: actorID,
		Role:    role,
	}
}

func drainEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("malformed event: %v", err)
		}
		return event
	default:
		t.Fatal("no event queued")
	}
	return Event{}
}

func TestHub_LastJoinWins(t *testing.T) {
	hub := NewHub(nil, nil)

	first := testClient(hub, "rider-1", "rider")
	second := testClient(hub, "rider-1", "rider")

	hub.registerClient(first)
	hub.registerClient(second)

	// The first connection is evicted and its send channel closed.
	if _, open := <-first.send; open {
		t.Error("expected evicted connection's channel closed")
	}
	if !hub.Connected("rider-1") {
		t.Fatal("expected rider-1 connected")
	}

	hub.RideAssigned("rider-1", &domain.Ride{ID: "ride-1", RiderID: "rider-1"})
	event := drainEvent(t, second)
	if event.Type != EventRideAssigned {
		t.Errorf("expected %s, got %s", EventRideAssigned, event.Type)
	}
}

func TestHub_EventDroppedWhenOffline(t *testing.T) {
	hub := NewHub(nil, nil)

	// No connection for the rider: the push is silently dropped.
	hub.RideAssigned("rider-1", &domain.Ride{ID: "ride-1", RiderID: "rider-1"})

	if hub.Connected("rider-1") {
		t.Error("expected rider-1 not connected")
	}
}

func TestHub_UnregisterRemovesDirectoryEntry(t *testing.T) {
	hub := NewHub(nil, nil)

	client := testClient(hub, "cap-1", "captain")
	hub.registerClient(client)
	if !hub.Connected("cap-1") {
		t.Fatal("expected cap-1 connected")
	}

	hub.unregisterClient(client)
	if hub.Connected("cap-1") {
		t.Error("expected cap-1 disconnected")
	}

	// Unregistering a replaced connection must not evict its successor.
	old := testClient(hub, "cap-1", "captain")
	hub.registerClient(old)
	replacement := testClient(hub, "cap-1", "captain")
	hub.registerClient(replacement)
	hub.unregisterClient(old)
	if !hub.Connected("cap-1") {
		t.Error("stale unregister must not evict the live connection")
	}
}

func TestHub_EvictedClientSendDoesNotPanic(t *testing.T) {
	hub := NewHub(nil, nil)

	first := testClient(hub, "rider-1", "rider")
	hub.registerClient(first)
	second := testClient(hub, "rider-1", "rider")
	hub.registerClient(second)

	// The evicted connection's read pump may still be reacting to inbound
	// frames. Writes after eviction must be swallowed, not panic on the
	// closed channel.
	first.sendError("unknown event type")
	if first.trySend([]byte("late")) {
		t.Error("expected send to a closed client to report failure")
	}

	// The successor is unaffected.
	hub.RideAssigned("rider-1", &domain.Ride{ID: "ride-1", RiderID: "rider-1"})
	if event := drainEvent(t, second); event.Type != EventRideAssigned {
		t.Errorf("expected %s, got %s", EventRideAssigned, event.Type)
	}

	// Closing again, as a late unregister would, is a no-op.
	first.closeSend()
}

func TestHub_LocationBroadcastReachesEveryone(t *testing.T) {
	hub := NewHub(nil, nil)

	rider := testClient(hub, "rider-1", "rider")
	captain := testClient(hub, "cap-2", "captain")
	hub.registerClient(rider)
	hub.registerClient(captain)

	hub.BroadcastCaptainLocation("cap-1", 26.45, 80.33)

	for _, c := range []*Client{rider, captain} {
		event := drainEvent(t, c)
		if event.Type != EventCaptainLocationUpdate {
			t.Errorf("expected %s, got %s", EventCaptainLocationUpdate, event.Type)
		}
		if event.Data["captain_id"] != "cap-1" {
			t.Errorf("expected captain_id cap-1, got %v", event.Data["captain_id"])
		}
	}
}

func TestHub_RidePayloadNeverCarriesTripCode(t *testing.T) {
	hub := NewHub(nil, nil)

	rider := testClient(hub, "rider-1", "rider")
	hub.registerClient(rider)

	hub.RideStatusUpdated("rider-1", &domain.Ride{
		ID:       "ride-1",
		RiderID:  "rider-1",
		TripCode: "482913",
		Status:   domain.RideStatusAccepted,
	})

	data := <-rider.send
	if containsTripCode(data) {
		t.Errorf("trip code leaked into push payload: %s", data)
	}
}

func containsTripCode(data []byte) bool {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return false
	}
	ride, ok := event.Data["ride"].(map[string]interface{})
	if !ok {
		return false
	}
	_, present := ride["trip_code"]
	return present
}
