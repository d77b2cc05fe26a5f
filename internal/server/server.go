// Package server exposes the classification pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sofiandread/detect-art-format/internal/classify"
	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/filetype"
	"github.com/sofiandread/detect-art-format/internal/metrics"
	"github.com/sofiandread/detect-art-format/internal/pdfpage"
	"github.com/sofiandread/detect-art-format/internal/render"
	"github.com/sofiandread/detect-art-format/internal/statuscheck"
	"github.com/sofiandread/detect-art-format/internal/storage"
	"github.com/sofiandread/detect-art-format/internal/uploads"
)

// PageLoader parses one page of a PDF into the classifier's object model.
type PageLoader func(path string, pageIndex int) (content.Page, error)

// ClipRenderer rasterizes a page region to PNG bytes.
type ClipRenderer func(path string, pageIndex int, clip render.Clip, dpi float64) ([]byte, error)

// Options wires the server's collaborators. Storage may be nil when no
// bucket is configured; LoadPage and RenderClip default to the real
// implementations and exist as fields so tests can substitute them.
type Options struct {
	Engine      *classify.Engine
	Uploads     *uploads.Store
	Detector    *filetype.Detector
	Storage     *storage.Client
	Checker     *statuscheck.Checker
	LoadPage    PageLoader
	RenderClip  ClipRenderer
	RenderDPI   float64
	KeyPrefix   string
	MaxUploadMB int
}

// Server handles the HTTP surface.
type Server struct {
	engine      *classify.Engine
	uploads     *uploads.Store
	detector    *filetype.Detector
	storage     *storage.Client
	checker     *statuscheck.Checker
	loadPage    PageLoader
	renderClip  ClipRenderer
	renderDPI   float64
	keyPrefix   string
	maxUploadMB int
}

// New builds a Server, applying defaults for optional fields.
func New(opts Options) *Server {
	s := &Server{
		engine:      opts.Engine,
		uploads:     opts.Uploads,
		detector:    opts.Detector,
		storage:     opts.Storage,
		checker:     opts.Checker,
		loadPage:    opts.LoadPage,
		renderClip:  opts.RenderClip,
		renderDPI:   opts.RenderDPI,
		keyPrefix:   opts.KeyPrefix,
		maxUploadMB: opts.MaxUploadMB,
	}
	if s.loadPage == nil {
		s.loadPage = pdfpage.Load
	}
	if s.renderClip == nil {
		s.renderClip = render.ClipPNG
	}
	if s.renderDPI <= 0 {
		s.renderDPI = 300
	}
	if s.maxUploadMB <= 0 {
		s.maxUploadMB = 64
	}
	return s
}

// RegisterRoutes attaches all handlers to the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/detect-art-format", s.handleDetect)
	mux.HandleFunc("/extract-design-image", s.handleExtract)
	mux.Handle("/metrics", metrics.Handler())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "detect-art-format",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.checker.Summary(r.Context()))
}

type detectResponse struct {
	Format  classify.Label   `json:"format"`
	Metrics classify.Metrics `json:"metrics"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	start := time.Now()

	path, cleanup, ok := s.resolveSource(w, r)
	if !ok {
		return
	}
	defer cleanup()

	if !s.validatePDF(w, path) {
		return
	}
	pageIndex, ok := parsePageIndex(w, r)
	if !ok {
		return
	}

	page, err := s.loadPage(path, pageIndex)
	if err != nil {
		if errors.Is(err, pdfpage.ErrPageOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.IncFailure("parse")
		log.Error().Err(err).Str("file", path).Int("page", pageIndex).Msg("failed to parse page")
		writeError(w, http.StatusInternalServerError, "failed to parse PDF page")
		return
	}

	label, m := s.engine.Classify(page, clipFromForm(r))
	metrics.ObserveClassification(string(label), m.Region, time.Since(start))

	log.Info().
		Str("label", string(label)).
		Str("region", m.Region).
		Int("page", pageIndex).
		Dur("took", time.Since(start)).
		Msg("classified region")

	writeJSON(w, http.StatusOK, detectResponse{Format: label, Metrics: m})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path, cleanup, ok := s.resolveSource(w, r)
	if !ok {
		return
	}
	defer cleanup()

	if !s.validatePDF(w, path) {
		return
	}
	pageIndex, ok := parsePageIndex(w, r)
	if !ok {
		return
	}

	// The page is parsed first so the clip resolves against the real page
	// bounds, with the same bottom-half fallback as classification.
	page, err := s.loadPage(path, pageIndex)
	if err != nil {
		if errors.Is(err, pdfpage.ErrPageOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.IncFailure("parse")
		log.Error().Err(err).Str("file", path).Int("page", pageIndex).Msg("failed to parse page")
		writeError(w, http.StatusInternalServerError, "failed to parse PDF page")
		return
	}

	region, _ := classify.SelectRegion(page.Bounds, clipFromForm(r))
	if region.IsEmpty() {
		writeError(w, http.StatusBadRequest, "clip region is empty")
		return
	}

	data, err := s.renderClip(path, pageIndex, render.Clip{X0: region.X0, Y0: region.Y0, X1: region.X1, Y1: region.Y1}, s.renderDPI)
	if err != nil {
		metrics.IncRender("error")
		if errors.Is(err, render.ErrEmptyClip) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		metrics.IncFailure("render")
		log.Error().Err(err).Str("file", path).Int("page", pageIndex).Msg("failed to render clip")
		writeError(w, http.StatusInternalServerError, "failed to render design image")
		return
	}
	metrics.IncRender("success")

	if s.storage != nil && parseBoolish(r.FormValue("archive")) {
		key := s.keyPrefix + uuid.NewString() + ".png"
		if url, err := s.storage.Archive(r.Context(), key, data, "image/png"); err != nil {
			metrics.IncArchive("error")
			log.Warn().Err(err).Str("key", key).Msg("failed to archive design image")
		} else {
			metrics.IncArchive("success")
			w.Header().Set("X-Archive-Location", url)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// resolveSource materializes the request's source PDF as a local file. It
// accepts either a multipart "pdf" upload or an s3:// URL in "file_path".
// The returned cleanup removes the temp file.
func (s *Server) resolveSource(w http.ResponseWriter, r *http.Request) (string, func(), bool) {
	noop := func() {}

	if err := r.ParseMultipartForm(int64(s.maxUploadMB) << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		metrics.IncFailure("upload")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", noop, false
	}

	if file, hdr, err := r.FormFile("pdf"); err == nil {
		defer file.Close()
		path, err := s.uploads.Save(file, hdr.Filename)
		if err != nil {
			metrics.IncFailure("upload")
			log.Error().Err(err).Msg("failed to store upload")
			writeError(w, http.StatusInternalServerError, "failed to store upload")
			return "", noop, false
		}
		metrics.ObserveUploadSize(hdr.Size)
		return path, func() { s.uploads.Remove(path) }, true
	}

	src := r.FormValue("file_path")
	if src == "" {
		writeError(w, http.StatusBadRequest, "missing pdf upload or file_path")
		return "", noop, false
	}
	bucket, key, ok := storage.ParseURI(src)
	if !ok {
		writeError(w, http.StatusBadRequest, "file_path must be an s3:// URL")
		return "", noop, false
	}
	if s.storage == nil {
		writeError(w, http.StatusBadRequest, "S3 fetch is not configured")
		return "", noop, false
	}

	dst := s.uploads.TempPath(".pdf")
	if err := s.storage.FetchToFile(r.Context(), bucket, key, dst); err != nil {
		metrics.IncFailure("fetch")
		log.Error().Err(err).Str("source", src).Msg("failed to fetch source from S3")
		writeError(w, http.StatusBadGateway, "failed to fetch source from S3")
		return "", noop, false
	}
	return dst, func() { s.uploads.Remove(dst) }, true
}

func (s *Server) validatePDF(w http.ResponseWriter, path string) bool {
	info, err := s.detector.Detect(path)
	if err != nil {
		metrics.IncFailure("validate")
		log.Error().Err(err).Str("file", path).Msg("failed to inspect file")
		writeError(w, http.StatusInternalServerError, "failed to inspect file")
		return false
	}
	if !info.IsPDF {
		metrics.IncFailure("validate")
		writeError(w, http.StatusBadRequest, fmt.Sprintf("expected a PDF, got %s", info.MIMEType))
		return false
	}
	return true
}

func parsePageIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.FormValue("pageIndex")
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "pageIndex must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func clipFromForm(r *http.Request) classify.ClipRequest {
	return classify.ClipRequest{
		CoordsOrigin: r.FormValue("coordsOrigin"),
		X:            r.FormValue("x"),
		Y:            r.FormValue("y"),
		Width:        r.FormValue("width"),
		Height:       r.FormValue("height"),
	}
}

func parseBoolish(v string) bool {
	return v == "1" || v == "true" || v == "yes"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
