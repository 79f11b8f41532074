package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/mithrel/confchat/internal/memo"
	"github.com/mithrel/confchat/pkg/richtext"
)

// maxBody caps a single message; chat replies are far smaller.
const maxBody = 1 << 20

// Server exposes the block parser over HTTP.
type Server struct {
	cfg   *viper.Viper
	cache *memo.Cache
	log   *log.Logger
}

func New(cfg *viper.Viper, cache *memo.Cache, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{cfg: cfg, cache: cache, log: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/render", s.auth(s.handleRender))
	mux.HandleFunc("/v1/render/markdown", s.auth(s.handleMarkdown))
	return s.logged(mux)
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Printf("http: %s %s status=%d dur=%s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type renderRequest struct {
	Text string `json:"text"`
}

type renderResponse struct {
	Digest string           `json:"digest"`
	Blocks []richtext.Block `json:"blocks"`
}

// readText extracts the message body: raw text, or {"text": ...} for JSON.
func readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "message too large (limit "+humanize.Bytes(maxBody)+")", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return "", false
	}
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		var req renderRequest
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return "", false
		}
		return req.Text, true
	}
	return string(b), true
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}
	blocks, digest := s.cache.Parse(text)
	if blocks == nil {
		blocks = []richtext.Block{}
	}
	if notModified(w, r, `"`+digest+`"`) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(renderResponse{Digest: digest, Blocks: blocks})
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}
	blocks, digest := s.cache.Parse(text)
	// Distinct from the JSON representation of the same text.
	if notModified(w, r, `"`+digest+`-md"`) {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, richtext.Markdown(blocks))
}

// notModified sets the ETag and answers 304 when the client already has it.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.WriteHeader(http.StatusNotModified)
	return true
}
