// Package status exposes a small read-only HTTP surface while the console
// runs: liveness, the current roster aggregates, and Prometheus metrics for
// the gateway. It serves operators watching a long-running session; it is not
// part of the admin API.
package status

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unihub/admin-console/internal/roster"
	appErrors "github.com/unihub/admin-console/pkg/errors"
	"github.com/unihub/admin-console/pkg/logger"
	"github.com/unihub/admin-console/pkg/metrics"
	"github.com/unihub/admin-console/pkg/middleware/requestid"
	"github.com/unihub/admin-console/pkg/response"
)

// RosterSource supplies one screen's aggregates for the snapshot endpoint.
type RosterSource interface {
	Aggregates() roster.Aggregates
	Loading() bool
}

// Server is the local status server.
type Server struct {
	logger   *zap.Logger
	recorder *metrics.Recorder
	sources  map[string]RosterSource
	engine   *gin.Engine
}

// New builds the server. Sources are keyed by screen name ("students",
// "lecturers").
func New(l *zap.Logger, recorder *metrics.Recorder, sources map[string]RosterSource) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	s := &Server{logger: l, recorder: recorder, sources: sources}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(l))

	r.GET("/health", s.health)
	r.GET("/rosters", s.rosters)
	r.GET("/rosters/:name", s.roster)
	if recorder != nil {
		r.GET("/metrics", gin.WrapH(recorder.Handler()))
	}

	s.engine = r
	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Sugar().Infow("status server starting", "addr", srv.Addr)

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type rosterSnapshot struct {
	Aggregates roster.Aggregates `json:"aggregates"`
	Loading    bool              `json:"loading"`
}

func (s *Server) rosters(c *gin.Context) {
	snapshot := make(map[string]rosterSnapshot, len(s.sources))
	for name, src := range s.sources {
		snapshot[name] = rosterSnapshot{Aggregates: src.Aggregates(), Loading: src.Loading()}
	}
	response.JSON(c, http.StatusOK, snapshot)
}

func (s *Server) roster(c *gin.Context) {
	name := c.Param("name")
	src, ok := s.sources[name]
	if !ok {
		response.Error(c, appErrors.WithStatus(appErrors.Clone(appErrors.ErrNotFound, "unknown roster "+name), http.StatusNotFound))
		return
	}
	response.JSON(c, http.StatusOK, rosterSnapshot{Aggregates: src.Aggregates(), Loading: src.Loading()})
}
