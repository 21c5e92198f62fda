package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdraft/mdraft-cli/pkg/project"
)

// Server exposes the project over HTTP: the file tree, file content and
// image uploads. It serves read-only project state; the only write path
// is the uploads directory.
type Server struct {
	root   string
	logger *slog.Logger
	server *http.Server
}

// New creates a project server rooted at root.
func New(root string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{root: root, logger: logger}
}

// Handler returns the routed handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/files/tree", s.handleTree)
	mux.HandleFunc("GET /api/files/", s.handleFileContent)
	mux.HandleFunc("POST /api/upload-image", s.handleUpload)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(filepath.Join(s.root, project.UploadsDir)))))
	return s.logged(mux)
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("project server listening", "addr", addr, "root", s.root)
	return s.server.ListenAndServe()
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// envelope is the uniform response shape.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	sub := r.URL.Query().Get("path")

	nodes, err := project.BuildTree(s.root, sub)
	if err != nil {
		if errors.Is(err, project.ErrOutsideRoot) {
			writeError(w, http.StatusForbidden, "access denied")
			return
		}
		s.logger.Error("tree listing failed", "path", sub, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list project tree")
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: nodes})
}

func (s *Server) handleFileContent(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if rel == "" {
		writeError(w, http.StatusBadRequest, "missing file path")
		return
	}

	fc, err := project.ReadFileContent(s.root, rel)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrOutsideRoot):
			writeError(w, http.StatusForbidden, "access denied")
		case errors.Is(err, os.ErrNotExist):
			writeError(w, http.StatusNotFound, "file not found")
		default:
			s.logger.Error("file read failed", "path", rel, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to read file")
		}
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: fc})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// One extra megabyte of headroom for the multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, project.MaxImageSize+1<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	res, err := project.SaveImage(s.root, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("image uploaded", "filename", res.Filename, "size", res.Size)
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:      true,
		URL:          res.URL,
		Filename:     res.Filename,
		OriginalName: res.OriginalName,
		Size:         res.Size,
	})
}

// uploadResponse is flat rather than enveloped, matching what upload
// clients expect.
type uploadResponse struct {
	Success      bool   `json:"success"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}
