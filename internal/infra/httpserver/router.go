package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appauth "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/auth"
	appdet "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/detections"
	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
	domusers "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/middleware"
)

type Router struct {
	authSvc   *appauth.Service
	detectSvc *appdet.Service
	maxUpload int64
	uploadDir string
}

func NewRouter(authSvc *appauth.Service, detectSvc *appdet.Service, maxUpload int64, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{
		authSvc:   authSvc,
		detectSvc: detectSvc,
		maxUpload: maxUpload,
		uploadDir: filepath.Join(".", "uploads"),
	}
	os.MkdirAll(r.uploadDir, 0o755)

	mux := chi.NewRouter()

	// the browser client sends credentials cross-origin during development
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.SessionAuth(authSvc))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 1))

	mux.Get("/api/health", middleware.HealthHandler(checkers))
	mux.Get("/api/metrics", middleware.MetricsHandler)
	mux.Post("/api/login", r.wrap(r.handleLogin))
	mux.Post("/api/register", r.wrap(r.handleRegister))
	mux.Post("/api/analyze", r.wrap(r.handleAnalyze))
	mux.Get("/api/history", r.wrap(r.handleHistory))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError pairs a status code with the {error} message for the client
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(msg string) error { return &httpError{status: http.StatusBadRequest, msg: msg} }

// wrap renders every failure as the {error} JSON body the web client parses
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var he *httpError
		if errors.As(err, &he) {
			writeError(w, he.status, he.msg)
			return
		}
		switch {
		case errors.Is(err, appauth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, appauth.ErrMissingCredentials),
			errors.Is(err, appauth.ErrMissingFields),
			errors.Is(err, appauth.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domusers.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already exists")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// setSession drops the login cookie on the response
func setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// POST /api/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body")
	}

	u, token, err := r.authSvc.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}

	setSession(w, token)
	return writeJSON(w, map[string]any{"user": u})
}

// POST /api/register
func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body")
	}

	u, token, err := r.authSvc.Register(req.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		return err
	}

	setSession(w, token)
	return writeJSON(w, map[string]any{"user": u})
}

// POST /api/analyze — multipart body, single field "file"
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	file, header, err := req.FormFile("file")
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return badRequest("No file uploaded")
	}
	defer file.Close()

	name := middleware.SanitizeFilename(header.Filename)
	if err := middleware.ValidateUploadName(name); err != nil {
		middleware.IncrementAnalysesFailed()
		return badRequest(err.Error())
	}

	// spool ke disk dulu, konten divalidasi dari magic bytes
	localPath := filepath.Join(r.uploadDir, fmt.Sprintf("%d-%s", middleware.GetUserIDFromContext(req.Context()), name))
	dst, err := os.Create(localPath)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	size, err := io.Copy(dst, file)
	dst.Close()
	if err != nil {
		os.Remove(localPath)
		middleware.IncrementAnalysesFailed()
		return err
	}

	head := make([]byte, 261)
	if f, err := os.Open(localPath); err == nil {
		n, _ := io.ReadFull(f, head)
		f.Close()
		head = head[:n]
	}
	if err := middleware.ValidateUploadContent(head); err != nil {
		os.Remove(localPath)
		middleware.IncrementAnalysesFailed()
		return badRequest(err.Error())
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := r.detectSvc.Analyze(req.Context(), appdet.AnalyzeCommand{
		UserID:      middleware.GetUserIDFromContext(req.Context()),
		FileName:    name,
		LocalPath:   localPath,
		Size:        size,
		ContentType: contentType,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		log.Printf("analyze error file=%s: %v", name, err)
		return err
	}

	return writeJSON(w, res)
}

// GET /api/history?limit=10
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())

	list, err := r.detectSvc.History(req.Context(), userID, 10)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.HistoryRecord{}
	}
	return writeJSON(w, map[string]any{"history": list})
}
