// Package server exposes the collage engine, the SVG preview and the photo
// asset store over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/compositor"
	"github.com/xob0t/boothframe/pkg/config"
	"github.com/xob0t/boothframe/pkg/filter"
	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/layout"
	"github.com/xob0t/boothframe/pkg/preview"
	"github.com/xob0t/boothframe/pkg/source"
	"github.com/xob0t/boothframe/pkg/store"
	"github.com/xob0t/boothframe/pkg/store/storage"
)

const (
	// MaxUploadSize bounds a single photo upload.
	MaxUploadSize = 20 << 20
	// MaxRequestSize bounds a render or preview request, data URIs included.
	MaxRequestSize = 64 << 20
)

// Server holds the handlers' dependencies.
type Server struct {
	Engine  *compositor.Engine
	Preview *preview.Renderer
	Assets  store.AssetStore
	Now     func() time.Time

	MaxRequestBytes int64 // default MaxRequestSize
}

// Router wires every route.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOptions := cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			parsed, err := url.Parse(origin)
			if err != nil {
				return false
			}
			switch parsed.Hostname() {
			case "localhost", "127.0.0.1", "[::1]", "::1":
				return parsed.Scheme == "http" || parsed.Scheme == "https"
			}
			return false
		},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}
	r.Use(cors.Handler(corsOptions))

	r.Route("/api", func(r chi.Router) {
		r.Get("/layouts", handleLayouts)
		r.Get("/frames", handleFrames)
		r.Get("/filters", handleFilters)

		r.Post("/render", s.handleRender(false))
		r.Post("/export", s.handleRender(true))
		r.Post("/preview", s.handlePreview)

		r.Route("/assets", func(r chi.Router) {
			r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
			r.Post("/", s.handleUpload)
			r.Get("/", s.handleListAssets)
			r.Get("/{id}", s.handleGetAsset)
			r.Delete("/{id}", s.handleDeleteAsset)
		})
	})
	return r
}

// ── Catalogs ──

func handleLayouts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, layout.All())
}

func handleFrames(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, frame.All())
}

func handleFilters(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, filter.Kinds())
}

// ── Rendering ──

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (compositor.Request, bool) {
	limit := s.MaxRequestBytes
	if limit <= 0 {
		limit = MaxRequestSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var req compositor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return req, false
		}
		logrus.WithField("error", err).Error("Failed to decode request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) handleRender(attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := s.decodeRequest(w, r)
		if !ok {
			return
		}

		artifact, err := s.Engine.Render(r.Context(), req)
		switch {
		case errors.Is(err, frame.ErrUnknownFrame):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			logrus.WithField("error", err).Error("Failed to render collage")
			http.Error(w, "Failed to render collage", http.StatusInternalServerError)
			return
		case artifact == nil:
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", artifact.MediaType())
		if attachment {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
				"filename": artifact.Filename,
			}))
		}
		w.Write(artifact.Data)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := s.Preview.Render(r.Context(), &buf, req)
	switch {
	case errors.Is(err, preview.ErrUnknownLayout), errors.Is(err, frame.ErrUnknownFrame):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		logrus.WithField("error", err).Error("Failed to render preview")
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// ── Assets ──

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "upload too large or unreadable", http.StatusBadRequest)
		return
	}
	mediaType, err := photoType(data)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"name":  header.Filename,
			"error": err,
		}).Warn("Rejected upload")
		http.Error(w, "not a supported photo", http.StatusUnsupportedMediaType)
		return
	}

	asset := &store.Asset{
		Name:      filepath.Base(header.Filename),
		MediaType: mediaType,
		Data:      data,
		CreatedAt: s.now(),
	}
	id, err := s.Assets.Put(r.Context(), asset)
	if err != nil {
		logrus.WithField("error", err).Error("Failed to save asset")
		http.Error(w, "Failed to save asset", http.StatusInternalServerError)
		return
	}
	logrus.WithFields(logrus.Fields{
		"id":   id,
		"name": asset.Name,
		"size": len(data),
	}).Info("Asset uploaded")

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{
		"id":     id,
		"name":   asset.Name,
		"handle": source.AssetScheme + id,
		"url":    "/api/assets/" + id,
	})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.Assets.List(r.Context())
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list assets")
		http.Error(w, "Failed to list assets", http.StatusInternalServerError)
		return
	}
	if assets == nil {
		assets = []*store.Asset{}
	}
	render.JSON(w, r, assets)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.Assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		assetError(w, err, "Failed to get asset")
		return
	}
	w.Header().Set("Content-Type", a.MediaType)
	w.Write(a.Data)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.Assets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		assetError(w, err, "Failed to delete asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// photoFormats maps the decoders the loader registers to media types.
var photoFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// photoType sniffs data with the registered image decoders. The file name and
// client-declared type are never trusted.
func photoType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unrecognized image data: %w", err)
	}
	mediaType, ok := photoFormats[format]
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	return mediaType, nil
}

func assetError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	logrus.WithField("error", err).Error(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ── Startup ──

// New assembles a server from configuration: asset store, loader, engine
// and preview renderer.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	assets, err := storage.GetStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open asset store: %w", err)
	}
	log := logrus.StandardLogger()
	loader := &source.Loader{Assets: assets, Workers: cfg.DecodeWorkers, Log: log}

	engine, err := compositor.New(compositor.Options{
		Caption:  cfg.Caption,
		FontPath: cfg.FontPath,
		Log:      log,
		Loader:   loader,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	pv, err := preview.NewRenderer(loader, cfg.Caption, log)
	if err != nil {
		return nil, err
	}
	return &Server{Engine: engine, Preview: pv, Assets: assets}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config) error {
	s, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.ListenAddr).Info("Starting server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
