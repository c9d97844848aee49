// Package dashboard provides a web-based view of the compass workspace.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/compasshq/compass/internal/infrastructure/sse"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/release"
	"github.com/compasshq/compass/pkg/storage"
)

//go:embed templates/*
var templatesFS embed.FS

// DataProvider provides workspace data for the dashboard.
type DataProvider interface {
	RankedIdeas() ([]idea.Idea, error)
	Features() ([]feature.Feature, error)
	Releases() ([]release.Release, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	addr      string
	provider  DataProvider
	publisher *storage.InMemoryEventPublisher
	server    *http.Server
	tmpl      *template.Template

	upgrader websocket.Upgrader
	mu       sync.RWMutex
	sockets  map[*websocket.Conn]struct{}
}

// NewServer creates a new dashboard server. When publisher is non-nil, live
// event feeds are exposed over SSE and WebSocket.
func NewServer(addr string, provider DataProvider, publisher *storage.InMemoryEventPublisher) (*Server, error) {
	funcMap := template.FuncMap{
		"statusClass": statusClass,
		"formatTime":  formatTime,
		"score":       scoreCell,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		addr:      addr,
		provider:  provider,
		publisher: publisher,
		tmpl:      tmpl,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sockets: make(map[*websocket.Conn]struct{}),
	}

	if publisher != nil {
		publisher.Subscribe(s.broadcast)
	}
	return s, nil
}

// Start starts the dashboard server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /board", s.handleBoard)
	mux.HandleFunc("GET /api/ideas", s.handleAPIIdeas)
	mux.HandleFunc("GET /api/features", s.handleAPIFeatures)
	mux.HandleFunc("GET /api/releases", s.handleAPIReleases)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	if s.publisher != nil {
		mux.Handle("GET /events", sse.NewSSEHandler(s.publisher))
	}

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Dashboard server starting on %s", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.mu.Lock()
	for conn := range s.sockets {
		conn.Close()
	}
	s.sockets = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()
	return s.server.Shutdown(ctx)
}

// PageData holds data for template rendering.
type PageData struct {
	Title    string
	Ideas    []idea.Idea
	Columns  []BoardColumn
	Releases []release.Release
	Stats    WorkspaceStats
	Error    string
}

// BoardColumn groups features by status for the board view.
type BoardColumn struct {
	Status   feature.Status
	Features []feature.Feature
}

// WorkspaceStats holds summary statistics.
type WorkspaceStats struct {
	Ideas      int
	Scored     int
	Features   int
	Done       int
	Releases   int
	Completion float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Compass"}

	ideas, err := s.provider.RankedIdeas()
	if err != nil {
		data.Error = err.Error()
		s.render(w, "index.html", data)
		return
	}
	data.Ideas = ideas

	features, _ := s.provider.Features()
	releases, _ := s.provider.Releases()
	data.Releases = releases
	data.Stats = calculateStats(ideas, features, releases)

	s.render(w, "index.html", data)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Board"}

	features, err := s.provider.Features()
	if err != nil {
		data.Error = err.Error()
		s.render(w, "board.html", data)
		return
	}
	data.Columns = buildBoard(features)

	s.render(w, "board.html", data)
}

func (s *Server) handleAPIIdeas(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func() (any, error) { return s.provider.RankedIdeas() })
}

func (s *Server) handleAPIFeatures(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func() (any, error) { return s.provider.Features() })
}

func (s *Server) handleAPIReleases(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func() (any, error) { return s.provider.Releases() })
}

func (s *Server) writeJSON(w http.ResponseWriter, load func() (any, error)) {
	data, err := load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.sockets[conn] = struct{}{}
	s.mu.Unlock()

	// Reader loop keeps the connection alive and detects close.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.sockets, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcast(event *events.BaseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.sockets {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
	return nil
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func calculateStats(ideas []idea.Idea, features []feature.Feature, releases []release.Release) WorkspaceStats {
	stats := WorkspaceStats{
		Ideas:    len(ideas),
		Features: len(features),
		Releases: len(releases),
	}

	for _, i := range ideas {
		if score, err := i.Score(); err == nil && score != nil {
			stats.Scored++
		}
	}
	for _, f := range features {
		if f.Status == feature.StatusDone {
			stats.Done++
		}
	}
	if stats.Features > 0 {
		stats.Completion = float64(stats.Done) / float64(stats.Features) * 100
	}

	return stats
}

func buildBoard(features []feature.Feature) []BoardColumn {
	order := []feature.Status{
		feature.StatusNew,
		feature.StatusInProgress,
		feature.StatusInReview,
		feature.StatusDone,
		feature.StatusCancelled,
	}

	columns := make([]BoardColumn, 0, len(order))
	for _, status := range order {
		col := BoardColumn{Status: status}
		for _, f := range features {
			if f.Status == status {
				col.Features = append(col.Features, f)
			}
		}
		columns = append(columns, col)
	}
	return columns
}

// Template helper functions
func statusClass(status feature.Status) string {
	switch status {
	case feature.StatusNew:
		return "status-new"
	case feature.StatusInProgress:
		return "status-progress"
	case feature.StatusInReview:
		return "status-review"
	case feature.StatusDone:
		return "status-done"
	case feature.StatusCancelled:
		return "status-cancelled"
	default:
		return "status-unknown"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func scoreCell(i idea.Idea) string {
	if d := i.Display(); d.Scored() {
		return fmt.Sprintf("%.1f", *d.RICE)
	}
	return "-"
}
