// Package api exposes a conversion session over a local HTTP API so a
// frontend can drive it without linking the library.
package api

import (
	"errors"
	"net"
	"net/http"
	"strings"

	C "github.com/localsub/localsub/constant"
	"github.com/localsub/localsub/convert"
	"github.com/localsub/localsub/log"
	"github.com/localsub/localsub/option"

	E "github.com/sagernet/sing/common/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

type Server struct {
	logger     log.ContextLogger
	httpServer *http.Server
	session    *convert.Session
}

func NewServer(logFactory log.Factory, session *convert.Session, options option.APIOptions) *Server {
	chiRouter := chi.NewRouter()
	server := &Server{
		logger: logFactory.NewLogger("api"),
		httpServer: &http.Server{
			Addr:    options.Listen,
			Handler: chiRouter,
		},
		session: session,
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})
	chiRouter.Use(corsMiddleware.Handler)
	chiRouter.Group(func(r chi.Router) {
		r.Use(authentication(options.Secret))
		r.Get("/", hello)
		r.Get("/version", version)
		r.Get("/profile", server.getProfile)
		r.Put("/profile", server.updateProfile)
		r.Get("/presets", server.getPresets)
		r.Get("/status", server.getStatus)
		r.Get("/result", server.getResult)
		r.Get("/nodes", server.getNodes)
		r.Post("/convert", server.postConvert)
		r.Post("/preview", server.postPreview)
		r.Post("/validate", server.postValidate)
		r.Post("/clear", server.postClear)
		r.Post("/reset", server.postReset)
	})
	return server
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return E.Cause(err, "api listen error")
	}
	s.logger.Info("api listening at ", listener.Addr())
	go func() {
		serveErr := s.httpServer.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("api serve error: ", serveErr)
		}
	}()
	return nil
}

func (s *Server) Close() error {
	return s.httpServer.Close()
}

func authentication(serverSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if serverSecret == "" {
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Authorization")
			bearer, token, found := strings.Cut(header, " ")
			hasInvalidHeader := bearer != "Bearer"
			hasInvalidSecret := !found || token != serverSecret
			if hasInvalidHeader || hasInvalidSecret {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

func hello(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"hello": "localsub"})
}

func version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"version": C.Version})
}
