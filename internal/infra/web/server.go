package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"marvel-tutor/internal/config"
	"marvel-tutor/internal/infra/lti"
	"marvel-tutor/internal/usecase"
)

type Server struct {
	chatUC    usecase.ChatUseCase
	historyUC usecase.HistoryUseCase
	tool      *lti.Tool
	auth      *AuthManager
	cfg       config.ServerConfig
	log       *zerolog.Logger
}

func NewServer(
	chatUC usecase.ChatUseCase,
	historyUC usecase.HistoryUseCase,
	tool *lti.Tool,
	auth *AuthManager,
	cfg config.ServerConfig,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		chatUC:    chatUC,
		historyUC: historyUC,
		tool:      tool,
		auth:      auth,
		cfg:       cfg,
		log:       logger,
	}
}

// Router builds the full HTTP surface: the chat page and API, the LTI
// launch endpoints, history reads and operational endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(s.log))
	r.Use(Recover(s.log))
	r.Use(RequestLog(s.log))
	r.Use(EmbedHeaders(s.cfg.FrameAncestors))
	// The completion call is the only long operation; bound the whole
	// request rather than leave a stalled upstream holding it forever.
	r.Use(Timeout(60 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/history/me", s.handleMyHistory)
		r.Get("/history/course", s.handleCourseHistory)
	})

	r.Route("/lti", func(r chi.Router) {
		r.Get("/login", s.handleLTILogin)
		r.Post("/login", s.handleLTILogin)
		r.Post("/launch", s.handleLTILaunch)
		r.Get("/jwks", s.handleJWKS)
	})

	return r
}
