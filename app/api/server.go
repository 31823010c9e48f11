package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rbhz/trs/app/cache"
	"github.com/rbhz/trs/app/dictionary"
	"github.com/rs/zerolog/log"
)

// Translator is the translation workflow served by API
type Translator interface {
	LookupWord(ctx context.Context, word string) (dictionary.Entry, error)
	Translate(ctx context.Context, content string) (string, error)
	LastTranslation() (string, error)
	History(limit int) ([]cache.Record, error)
}

type Server struct {
	translator Translator
	router     chi.Router
}

// Run listens on localhost until ctx is canceled
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("failed to shutdown API server")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("API server started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(translator Translator) *Server {
	s := &Server{translator: translator}
	tr := translationService{translator: translator}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Get("/word/{word}", tr.GetWord)
		r.Post("/translate", tr.Translate)
		r.Get("/last", tr.GetLast)
		r.Get("/history", tr.GetHistory)
	})

	s.router = r
	return s
}
