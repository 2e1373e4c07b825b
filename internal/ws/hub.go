package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
)

// LocationSink persists captain coordinates reported over the channel.
type LocationSink interface {
	SaveCaptainLocation(ctx context.Context, captainID string, lat, lng float64) error
}

// Hub owns the session directory: the mapping from actor id to live
// connection. The directory holds at most one entry per actor: the most
// recent join wins and the previous connection is closed. Entries are
// ephemeral and hold no authority beyond delivery addressing.
type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu        sync.RWMutex
	clients   map[*Client]bool
	directory map[string]*Client

	locations LocationSink
	log       *logrus.Logger
}

// Hub implements the service-layer notifier.
var _ service.Notifier = (*Hub)(nil)

// NewHub creates a new Hub.
func NewHub(locations LocationSink, log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		directory:  make(map[string]*Client),
		locations:  locations,
		log:        log,
	}
}

// Run processes connection lifecycle events. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Last join wins: replace, never merge.
	if old, ok := h.directory[client.ActorID]; ok && old != client {
		delete(h.clients, old)
		old.closeSend()
	}

	h.clients[client] = true
	h.directory[client.ActorID] = client

	h.log.WithFields(logrus.Fields{"actor": client.ActorID, "role": client.Role}).Debug("session joined")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	client.closeSend()

	if h.directory[client.ActorID] == client {
		delete(h.directory, client.ActorID)
	}

	h.log.WithField("actor", client.ActorID).Debug("session left")
}

// Connected reports whether an actor currently has a live connection.
func (h *Hub) Connected(actorID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.directory[actorID]
	return ok
}

// RideAssigned pushes a ride-assigned event to the rider, if connected.
func (h *Hub) RideAssigned(riderID string, ride *domain.Ride) {
	h.sendToActor(riderID, newEvent(EventRideAssigned, ridePayload(ride)))
}

// RideStatusUpdated pushes the full updated ride to the rider, if connected.
func (h *Hub) RideStatusUpdated(riderID string, ride *domain.Ride) {
	h.sendToActor(riderID, newEvent(EventRideStatusUpdated, ridePayload(ride)))
}

// BroadcastCaptainLocation pushes a location update to every connected
// actor. The broadcast is deliberately unscoped; see the session directory
// design notes.
func (h *Hub) BroadcastCaptainLocation(captainID string, lat, lng float64) {
	event := newEvent(EventCaptainLocationUpdate, map[string]interface{}{
		"captain_id": captainID,
		"lat":        lat,
		"lng":        lng,
	})

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !client.trySend(data) {
			// Slow consumer; drop rather than block the broadcast.
			h.log.WithField("actor", client.ActorID).Debug("dropped location event")
		}
	}
}

// sendToActor delivers an event to a single actor. If the actor has no live
// connection the event is dropped: no queue, no retry.
func (h *Hub) sendToActor(actorID string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.directory[actorID]
	if !ok {
		return
	}

	if !client.trySend(data) {
		h.log.WithField("actor", actorID).Debug("dropped ride event")
	}
}
