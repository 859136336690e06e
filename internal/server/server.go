package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wz-generator/internal/casefile"
	"wz-generator/internal/engine"
	"wz-generator/internal/logging"
)

// MaxBodyBytes caps form submissions and uploaded case files.
const MaxBodyBytes = 8 << 20

// Options configures the server.
type Options struct {
	Addr string
	// Mode is the gin mode; "" keeps gin's current mode.
	Mode        string
	CORSOrigins []string
	// Store, when set, keeps a copy of every saved case.
	Store  *casefile.FileStore
	Logger *logging.Logger
}

// Server serves the engine over HTTP.
type Server struct {
	engine *engine.Engine
	store  *casefile.FileStore
	log    *logging.Logger
	opts   Options
}

// New returns a server for e.
func New(e *engine.Engine, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}

	return &Server{engine: e, store: opts.Store, log: logging.OrNop(opts.Logger), opts: opts}
}

// Router builds the gin router.
func (s *Server) Router() *gin.Engine {
	if s.opts.Mode != "" {
		gin.SetMode(s.opts.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.opts.CORSOrigins))
	r.Use(LimitBody(MaxBodyBytes))

	r.GET("/healthcheck", s.healthCheck)

	api := r.Group("/api")
	{
		api.GET("/municipalities", s.listMunicipalities)
		api.GET("/fields", s.listFields)

		api.POST("/compare", s.compare)
		api.POST("/generate/:kind/:format", s.generate)
		api.POST("/bundle/:format", s.bundle)

		api.POST("/cases/save", s.saveCase)
		api.POST("/cases/load", s.loadCase)
		api.POST("/cases/project", s.projectCase)

		if s.store != nil {
			api.GET("/cases", s.listCases)
			api.GET("/cases/:name", s.getCase)
		}
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.log.Info("server stopped")

	return nil
}
