package server

import "sync"

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub tracks connected clients and enforces connection limits.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]struct{}
	ipConns    map[string]int
	totalConns int
	closed     bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		ipConns: make(map[string]int),
	}
}

// CanAccept reports whether another connection from ip is allowed.
func (h *Hub) CanAccept(ip string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed && h.totalConns < maxTotalConns && h.ipConns[ip] < maxConnsPerIP
}

// Add registers c. It returns false once the hub is closed.
func (h *Hub) Add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.ipConns[c.remoteAddr]++
	h.totalConns++
	return true
}

// Remove unregisters c and closes its send queue, which stops its writer.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.ipConns[c.remoteAddr]--
	if h.ipConns[c.remoteAddr] <= 0 {
		delete(h.ipConns, c.remoteAddr)
	}
	h.totalConns--
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close rejects new clients and closes every connection. Each reader then
// fails and removes its client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.conn.Close()
	}
}
