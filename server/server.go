package server

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"product_copy_studio/config"
	"product_copy_studio/logging"
	"product_copy_studio/session"
)

// generationTimeout bounds one streamed run, including a slow remote provider.
const generationTimeout = 5 * time.Minute

type Server struct {
	store     *session.Store
	logger    *logging.Logger
	uploadMax int64
}

func New(store *session.Store, logger *logging.Logger, uploadMax int64) (*Server, error) {
	if store == nil {
		return nil, errors.New("session store required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if uploadMax <= 0 {
		uploadMax = config.DefaultUploadMaxBytes
	}
	return &Server{store: store, logger: logger, uploadMax: uploadMax}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /api/options", s.handleOptions)

	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.withWorkspace(s.handleSessionGet))
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleSessionDelete)

	mux.HandleFunc("PATCH /api/sessions/{id}/form", s.withWorkspace(s.handleFormUpdate))
	mux.HandleFunc("POST /api/sessions/{id}/files/{kind}", s.withWorkspace(s.handleFilesAdd))
	mux.HandleFunc("DELETE /api/sessions/{id}/files/{kind}/{index}", s.withWorkspace(s.handleFileDelete))
	mux.HandleFunc("PUT /api/sessions/{id}/display-language", s.withWorkspace(s.handleDisplayLanguage))
	mux.HandleFunc("POST /api/sessions/{id}/widgets/close", s.withWorkspace(s.handleWidgetsClose))
	mux.HandleFunc("POST /api/sessions/{id}/widgets/{name}/toggle", s.withWorkspace(s.handleWidgetToggle))
	mux.HandleFunc("POST /api/sessions/{id}/widgets/{name}/select", s.withWorkspace(s.handleWidgetSelect))
	mux.HandleFunc("DELETE /api/sessions/{id}/languages/{code}", s.withWorkspace(s.handleLanguageRemove))

	mux.HandleFunc("POST /api/sessions/{id}/generate", s.withWorkspace(s.handleGenerate))
	mux.HandleFunc("POST /api/sessions/{id}/feedback", s.withWorkspace(s.handleFeedbackOpen))
	mux.HandleFunc("DELETE /api/sessions/{id}/feedback", s.withWorkspace(s.handleFeedbackCancel))
	mux.HandleFunc("POST /api/sessions/{id}/feedback/submit", s.withWorkspace(s.handleFeedbackSubmit))

	mux.HandleFunc("GET /api/sessions/{id}/export/{language}/{section}", s.withWorkspace(s.handleExport))

	var h http.Handler = mux
	h = recoverMiddleware(s.logger)(h)
	h = logMiddleware(s.logger)(h)
	return h
}

type workspaceHandler func(w http.ResponseWriter, r *http.Request, ws *session.Workspace)

func (s *Server) withWorkspace(next workspaceHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.store.Get(r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r, ws)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func logMiddleware(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func recoverMiddleware(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
					writeJSONStatus(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
