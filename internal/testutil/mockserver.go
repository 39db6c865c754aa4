package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/websocket"
)

// MockDataServer serves fake territories and alerts documents over HTTP
type MockDataServer struct {
	server *httptest.Server

	mu              sync.RWMutex
	territoriesDoc  []byte
	alertsDoc       []byte
	territoriesCode int
	alertsCode      int
}

// NewMockDataServer starts a data server with the given documents
func NewMockDataServer(territoriesDoc, alertsDoc []byte) *MockDataServer {
	s := &MockDataServer{
		territoriesDoc:  territoriesDoc,
		alertsDoc:       alertsDoc,
		territoriesCode: http.StatusOK,
		alertsCode:      http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/territories.geojson", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		code, doc := s.territoriesCode, s.territoriesDoc
		s.mu.RUnlock()
		s.respond(w, code, doc)
	})
	mux.HandleFunc("/alerts.geojson", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		code, doc := s.alertsCode, s.alertsDoc
		s.mu.RUnlock()
		s.respond(w, code, doc)
	})

	s.server = httptest.NewServer(mux)
	return s
}

func (s *MockDataServer) respond(w http.ResponseWriter, code int, doc []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code == http.StatusOK {
		w.Write(doc)
	}
}

// TerritoriesURL returns the territories document URL
func (s *MockDataServer) TerritoriesURL() string {
	return s.server.URL + "/territories.geojson"
}

// AlertsURL returns the alerts document URL
func (s *MockDataServer) AlertsURL() string {
	return s.server.URL + "/alerts.geojson"
}

// FailTerritories makes the territories endpoint return the given status
func (s *MockDataServer) FailTerritories(code int) {
	s.mu.Lock()
	s.territoriesCode = code
	s.mu.Unlock()
}

// FailAlerts makes the alerts endpoint return the given status
func (s *MockDataServer) FailAlerts(code int) {
	s.mu.Lock()
	s.alertsCode = code
	s.mu.Unlock()
}

// SetAlertsDoc replaces the alerts document
func (s *MockDataServer) SetAlertsDoc(doc []byte) {
	s.mu.Lock()
	s.alertsDoc = doc
	s.mu.Unlock()
}

// Close shuts the server down
func (s *MockDataServer) Close() {
	s.server.Close()
}

// MockFeedServer implements a fake alert feed over WebSocket
type MockFeedServer struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewMockFeedServer starts a feed server
func NewMockFeedServer() *MockFeedServer {
	s := &MockFeedServer{
		clients: make(map[*websocket.Conn]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/alerts/", s.handleFeed)
	s.server = httptest.NewServer(mux)
	return s
}

func (s *MockFeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Drain subscribe messages until the client goes away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				delete(s.clients, conn)
				s.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// URL returns the feed server base URL (http scheme)
func (s *MockFeedServer) URL() string {
	return s.server.URL
}

// ClientCount returns the number of connected feed clients
func (s *MockFeedServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// PushAlert broadcasts an alert:new message carrying the given feature
func (s *MockFeedServer) PushAlert(feature map[string]interface{}) {
	data, _ := json.Marshal(feature)
	msg, _ := json.Marshal(map[string]interface{}{
		"type": "alert:new",
		"data": json.RawMessage(data),
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// PushSnapshot broadcasts an alert:snapshot message carrying the full
// feature list
func (s *MockFeedServer) PushSnapshot(features ...map[string]interface{}) {
	data, _ := json.Marshal(features)
	msg, _ := json.Marshal(map[string]interface{}{
		"type": "alert:snapshot",
		"data": json.RawMessage(data),
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// Close disconnects all clients and shuts the server down
func (s *MockFeedServer) Close() {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()
	s.server.Close()
}
