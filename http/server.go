package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/google/uuid"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":3000"

// maxRequestSize caps request bodies.
const maxRequestSize = 1 << 20

// RequestIDHeader carries the per-request ID on responses.
const RequestIDHeader = "X-Request-ID"

// Service is the set of pipeline operations served over HTTP.
// *pipeline.Pipeline implements it.
type Service interface {
	RewriteURL(ctx context.Context, url string) (*pipeline.Result, error)
	RewriteDraft(ctx context.Context, content string, opts pipeline.Options) (*pipeline.Result, error)
	TranslateRewrite(ctx context.Context, url string, opts pipeline.Options) (*pipeline.Result, error)
	GenerateFromInterview(ctx context.Context, in pipeline.Interview, opts pipeline.Options) (*pipeline.Result, error)
	SocialPostToNews(ctx context.Context, post pipeline.SocialPost) (*pipeline.Result, error)
	VideoToNews(ctx context.Context, v pipeline.Video) (*pipeline.Result, error)
	Proofread(ctx context.Context, text string) (*pipeline.Result, error)
}

var _ Service = (*pipeline.Pipeline)(nil)

// Server serves the pipeline as a JSON API.
type Server struct {
	server  *http.Server
	ln      net.Listener
	service Service
	logger  *slog.Logger

	// Addr is the listen address. Set before calling Open().
	Addr string
}

// NewServer returns a Server for service. A nil logger discards logs.
func NewServer(service Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		service: service,
		logger:  logger,
		Addr:    DefaultAddr,
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return newsdesk.Errorf(newsdesk.EINTERNAL, "listening on %s: %v", s.Addr, err)
	}
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the routed, CORS-enabled, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /rewrite-url", s.handleRewriteURL)
	mux.HandleFunc("POST /rewrite-news-draft", s.handleRewriteDraft)
	mux.HandleFunc("POST /translate-rewrite", s.handleTranslateRewrite)
	mux.HandleFunc("POST /generate-news", s.handleGenerateNews)
	mux.HandleFunc("POST /celebrity-social-to-news", s.handleSocial)
	mux.HandleFunc("POST /generate-news-from-youtube", s.handleYouTube)
	mux.HandleFunc("POST /proofread-text", s.handleProofread)
	return s.withRequestLog(withCORS(mux))
}

type optionsRequest struct {
	MinLength        int    `json:"minLength"`
	MaxLength        int    `json:"maxLength"`
	NumParagraphs    int    `json:"numParagraphs"`
	Tone             string `json:"tone"`
	SourceLanguage   string `json:"sourceLanguage"`
	IsBrandsFiltered bool   `json:"isBrandsFiltered"`
}

func (r optionsRequest) options() pipeline.Options {
	return pipeline.Options{
		MinLength:      r.MinLength,
		MaxLength:      r.MaxLength,
		NumParagraphs:  r.NumParagraphs,
		Tone:           pipeline.ParseTone(r.Tone),
		SourceLanguage: r.SourceLanguage,
		FilterBrands:   r.IsBrandsFiltered,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRewriteURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.RewriteURL(r.Context(), req.URL)
	s.respond(w, r, res, err)
}

func (s *Server) handleRewriteDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		optionsRequest
		Content string `json:"content"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.RewriteDraft(r.Context(), req.Content, req.options())
	s.respond(w, r, res, err)
}

func (s *Server) handleTranslateRewrite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		optionsRequest
		URL string `json:"url"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.TranslateRewrite(r.Context(), req.URL, req.options())
	s.respond(w, r, res, err)
}

func (s *Server) handleGenerateNews(w http.ResponseWriter, r *http.Request) {
	var req struct {
		optionsRequest
		Content string `json:"content"`
		Title   string `json:"title"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.GenerateFromInterview(r.Context(),
		pipeline.Interview{Content: req.Content, Title: req.Title}, req.options())
	s.respond(w, r, res, err)
}

func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArtistName       string `json:"artistName"`
		Platform         string `json:"platform"`
		PostContent      string `json:"postContent"`
		MediaDescription string `json:"mediaDescription"`
		OriginalLink     string `json:"originalLink"`
		Remark           string `json:"remark"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.SocialPostToNews(r.Context(), pipeline.SocialPost{
		ArtistName:       req.ArtistName,
		Platform:         req.Platform,
		Content:          req.PostContent,
		MediaDescription: req.MediaDescription,
		OriginalLink:     req.OriginalLink,
		Remark:           req.Remark,
	})
	s.respond(w, r, res, err)
}

func (s *Server) handleYouTube(w http.ResponseWriter, r *http.Request) {
	var req struct {
		YouTubeURL       string `json:"youtubeUrl"`
		SourceLanguage   string `json:"sourceLanguage"`
		MediaDescription string `json:"mediaDescription"`
		SocialRemark     string `json:"socialRemark"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.VideoToNews(r.Context(), pipeline.Video{
		URL:              req.YouTubeURL,
		Language:         req.SourceLanguage,
		MediaDescription: req.MediaDescription,
		Remark:           req.SocialRemark,
	})
	s.respond(w, r, res, err)
}

func (s *Server) handleProofread(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.Proofread(r.Context(), req.Text)
	s.respond(w, r, res, err)
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err == nil {
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		s.fail(w, r, newsdesk.Errorf(newsdesk.EINVALID, "請求內容不是有效的 JSON：%v", err))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, res *pipeline.Result, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": res})
}

// fail writes an error response. Validation and insufficient-content
// errors are the caller's to fix and get 400; everything else is 500.
// Hints are appended to the message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch newsdesk.ErrorCode(err) {
	case newsdesk.EINVALID, newsdesk.EINSUFFICIENT:
		status = http.StatusBadRequest
	}

	msg := newsdesk.ErrorMessage(err)
	if hint := newsdesk.ErrorHint(err); hint != "" {
		msg += " " + hint
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
			"err", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withCORS allows any origin and answers preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog assigns a request ID and logs every request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func(begin time.Time) {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"request_id", id,
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}
