package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/providers"
)

// SSEHandler streams catalog changes to connected clients so car lists
// refresh without polling
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[chan *entities.CarEvent]bool
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[chan *entities.CarEvent]bool),
	}
}

// StreamCatalogUpdates handles SSE connections for catalog updates
// GET /api/cars/events
func (h *SSEHandler) StreamCatalogUpdates(w http.ResponseWriter, r *http.Request) {
	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "live catalog updates are not available")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan *entities.CarEvent, 10)
	h.registerClient(clientChan)
	defer h.unregisterClient(clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), providers.EventChannelCatalog)
	if err != nil {
		log.Warn().Err(err).Msg("failed to subscribe to catalog updates")
		return
	}

	h.sendEvent(w, "connected", map[string]interface{}{
		"timestamp": time.Now(),
	})
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Msg("client disconnected from catalog stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.Type), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.CarEvent, clientChan chan<- *entities.CarEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

func (h *SSEHandler) registerClient(clientChan chan *entities.CarEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientChan] = true
	log.Debug().Int("total", len(h.clients)).Msg("catalog stream client registered")
}

func (h *SSEHandler) unregisterClient(clientChan chan *entities.CarEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientChan)
	log.Debug().Int("remaining", len(h.clients)).Msg("catalog stream client unregistered")
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// ClientCount returns the number of connected clients for debugging
func (h *SSEHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
