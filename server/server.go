package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"sync"
	"time"

	"f1calendar/broadcaster"
	"f1calendar/metrics"
	"f1calendar/model"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	StaticDir    string
	CalendarFile string // name of the generated calendar inside StaticDir
	Template     string
	Greeting     string
}

// Server is the web front: an index page, the static directory (which holds the
// generated calendar) and a websocket that announces regenerations.
type Server struct {
	opts        Options
	tmpl        *template.Template
	static      Resolver
	broadcaster *broadcaster.Broadcaster

	mu       sync.RWMutex
	schedule *model.Schedule
}

type indexPage struct {
	Greeting     string
	CalendarFile string
	Schedule     *model.Schedule
}

// StatusMessage is pushed to websocket clients on connect and after each regeneration.
type StatusMessage struct {
	Type         string    `json:"type"`
	Season       string    `json:"season,omitempty"`
	Events       int       `json:"events"`
	GeneratedAt  time.Time `json:"generatedAt"`
	CalendarFile string    `json:"calendarFile"`
}

func New(opts Options, static Resolver, b *broadcaster.Broadcaster) (*Server, error) {
	tmpl, err := template.ParseFiles(opts.Template)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load index template")
	}
	if b == nil {
		b = broadcaster.NewBroadcaster()
	}
	return &Server{
		opts:        opts,
		tmpl:        tmpl,
		static:      static,
		broadcaster: b,
	}, nil
}

// SetSchedule replaces the schedule shown on the index page and notifies connected pages.
func (s *Server) SetSchedule(schedule model.Schedule) {
	s.mu.Lock()
	s.schedule = &schedule
	s.mu.Unlock()

	msg, err := json.Marshal(s.status())
	if err != nil {
		slog.Error("Failed to encode calendar status", "error", err)
		return
	}
	s.broadcaster.Broadcast(msg)
}

func (s *Server) current() *model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

func (s *Server) status() StatusMessage {
	msg := StatusMessage{Type: "calendar", CalendarFile: "/" + s.opts.CalendarFile}
	if sch := s.current(); sch != nil {
		msg.Season = sch.Season
		msg.Events = len(sch.Events)
		msg.GeneratedAt = sch.GeneratedAt
	}
	return msg
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/api/schedule", s.handleSchedule).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(s.handleStatic).Methods(http.MethodGet, http.MethodHead)
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Greeting:     s.opts.Greeting,
		CalendarFile: s.opts.CalendarFile,
		Schedule:     s.current(),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, page); err != nil {
		slog.Error("Error rendering index page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sch := s.current()
	if sch == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "Season data not yet available or failed to load."})
		return
	}

	if err := json.NewEncoder(w).Encode(sch); err != nil {
		slog.Error("Error encoding season schedule JSON", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	msg, err := json.Marshal(s.status())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.broadcaster.HandleConnections(w, r, msg)
}

// handleStatic serves files from the static directory. Anything that cannot be read is a
// 404 carrying the underlying error text.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	data, err := s.static.Open(name)
	if err != nil {
		metrics.StaticRequests.WithLabelValues(strconv.Itoa(http.StatusNotFound)).Inc()
		slog.Debug("Static file not found", "path", name, "error", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	metrics.StaticRequests.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	w.Header().Set("Content-Type", contentType(name, data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

func contentType(name string, data []byte) string {
	ext := path.Ext(name)
	if ext == ".ics" {
		return "text/calendar; charset=utf-8"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
