// ABOUTME: Live preview server: HTTP page plus websocket tile streaming
// ABOUTME: Each connection owns a surface set; renders are rate-limited
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wavetile/wavetile-go/internal/discovery"
	"github.com/wavetile/wavetile-go/internal/version"
	"github.com/wavetile/wavetile-go/pkg/render"
)

// Config holds server configuration
type Config struct {
	Port       int
	Name       string
	EnableMDNS bool
	Debug      bool
}

// Server streams rendered waveform tiles to browser clients.
type Server struct {
	config   Config
	serverID string

	params render.Params
	peaks  render.Peaks

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// HTTP server
	httpServer *http.Server
	mux        *http.ServeMux

	// Client management
	clients   map[string]*Client
	clientsMu sync.RWMutex

	// mDNS discovery
	mdnsManager *discovery.Manager

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new server instance. Every connection gets its own
// surface set built from params, rendering the given peaks.
func New(config Config, params render.Params, peaks render.Peaks) *Server {
	return &Server{
		config:   config,
		serverID: uuid.New().String(),
		params:   params,
		peaks:    peaks,
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Trusted local networks only.
				return true
			},
		},
		clients:  make(map[string]*Client),
		stopChan: make(chan struct{}),
	}
}

// Start starts the server and blocks until Stop is called or the
// listener fails.
func (s *Server) Start() error {
	log.Printf("Server starting: %s (ID: %s)", s.config.Name, s.serverID)

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
		})
		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		}
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/ws", s.handleWebSocket)

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Preview server listening on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		log.Printf("Server shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		serverErr = err
	}

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	s.closeClients()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	s.wg.Wait()
	log.Printf("Server stopped cleanly")

	if serverErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// handleIndex serves the embedded preview page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleWebSocket upgrades a connection and runs its session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	log.Printf("New WebSocket connection from %s", r.RemoteAddr)
	s.handleConnection(conn)
}

// handleConnection owns one client for the connection's lifetime.
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	set, err := render.New(s.params)
	if err != nil {
		log.Printf("Error creating surface set: %v", err)
		return
	}

	client := newClient(uuid.New().String(), conn, set, s.peaks, s.params.FillParent)
	defer client.close()

	s.clientsMu.Lock()
	s.clients[client.ID] = client
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, client.ID)
		s.clientsMu.Unlock()
		log.Printf("Client disconnected: %s", client.ID)
	}()

	client.send(Message{
		Type: "server/hello",
		Payload: ServerHello{
			ServerID: s.serverID,
			Name:     s.config.Name,
			Product:  version.Product,
			Version:  version.Version,
		},
	})

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		client.writer()
	}()
	go func() {
		defer s.wg.Done()
		client.renderLoop()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		s.handleClientMessage(client, data)
	}
}

// handleClientMessage routes one inbound message.
func (s *Server) handleClientMessage(client *Client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	switch msg.Type {
	case "client/view":
		var req ViewRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			log.Printf("Error decoding view request: %v", err)
			return
		}
		if s.config.Debug {
			log.Printf("[DEBUG] View request from %s: width=%d zoom=%.2f style=%s",
				client.ID, req.Width, req.Zoom, req.Style)
		}
		client.requestView(req)
	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

// closeClients tears down every connected session.
func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for id, client := range s.clients {
		client.close()
		_ = client.Conn.Close()
		delete(s.clients, id)
	}
}

// ClientCount reports connected sessions, for logs and tests.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// indexHTML is the embedded preview page: it opens the websocket,
// sends view requests on zoom/scrub input, and blits tile PNGs onto a
// canvas at their left offsets.
const indexHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Wavetile Preview</title>
<style>
  body { background: #111; color: #ddd; font-family: monospace; margin: 2em; }
  canvas { background: #000; display: block; margin-top: 1em; }
  input { width: 30em; }
</style></head>
<body>
<h3>Wavetile Preview</h3>
<label>zoom <input id="zoom" type="range" min="1" max="16" step="0.25" value="1"></label>
<label>progress <input id="progress" type="range" min="0" max="1" step="0.01" value="0"></label>
<label><input id="bars" type="checkbox"> bars</label>
<canvas id="wave" height="128"></canvas>
<script>
  const canvas = document.getElementById('wave');
  const ctx = canvas.getContext('2d');
  const ws = new WebSocket('ws://' + location.host + '/ws');

  function requestView() {
    ws.send(JSON.stringify({type: 'client/view', payload: {
      width: window.innerWidth - 64,
      zoom: parseFloat(document.getElementById('zoom').value),
      progress: parseFloat(document.getElementById('progress').value),
      style: document.getElementById('bars').checked ? 'bars' : 'line',
    }}));
  }

  ws.onopen = requestView;
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === 'server/tile') {
      const t = msg.payload;
      const img = new Image();
      img.onload = () => {
        if (t.index === 0) {
          canvas.width = window.innerWidth - 64;
          ctx.clearRect(0, 0, canvas.width, canvas.height);
        }
        ctx.drawImage(img, t.left, 0);
      };
      img.src = 'data:image/png;base64,' + t.png;
    }
  };
  for (const id of ['zoom', 'progress', 'bars']) {
    document.getElementById(id).addEventListener('input', requestView);
  }
  window.addEventListener('resize', requestView);
</script>
</body>
</html>`
