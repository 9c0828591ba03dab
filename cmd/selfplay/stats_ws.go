package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"tile-engine/arena"
)

// trainingStatus is the JSON frame broadcast to live-stats clients.
type trainingStatus struct {
	Episode     int     `json:"episode"`
	MeanScore   float64 `json:"mean_score"`
	BestScore   int     `json:"best_score"`
	Rate2048    float64 `json:"rate_2048"`
	Histogram   string  `json:"max_tile_histogram"`
	UpdatedAtMs int64   `json:"updated_at_ms"`
}

func statusFrom(episode int, s *arena.Stats) trainingStatus {
	return trainingStatus{
		Episode:     episode,
		MeanScore:   s.MeanScore(),
		BestScore:   s.BestScore,
		Rate2048:    s.TileReachRate(2048),
		Histogram:   s.TileHistogram(),
		UpdatedAtMs: time.Now().UnixMilli(),
	}
}

type statsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// statsHub fans the latest training status out to websocket clients.
// Publish never blocks the training loop: slow clients drop frames.
type statsHub struct {
	mu      sync.Mutex
	clients map[*statsClient]struct{}
	last    trainingStatus
}

func newStatsHub() *statsHub {
	return &statsHub{clients: make(map[*statsClient]struct{})}
}

func (h *statsHub) Publish(status trainingStatus) {
	data, err := json.Marshal(status)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.last = status
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *statsHub) register(c *statsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *statsHub) unregister(c *statsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *statsHub) snapshot() trainingStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func serveStats(addr string, hub *statsHub) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.snapshot()); err != nil {
			log.Printf("[selfplay:ws] encode status: %v", err)
		}
	})
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		serveStatsWS(hub, w, req)
	})
	log.Printf("[selfplay:ws] live stats on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[selfplay:ws] stats server stopped: %v", err)
	}
}

func serveStatsWS(hub *statsHub, w http.ResponseWriter, req *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	client := &statsClient{conn: conn, send: make(chan []byte, 16)}
	hub.register(client)

	if data, err := json.Marshal(hub.snapshot()); err == nil {
		select {
		case client.send <- data:
		default:
		}
	}

	go func() {
		defer conn.Close()
		for data := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.unregister(client)
			return
		}
	}
}
