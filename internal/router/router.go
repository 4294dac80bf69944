package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"helpdesk/internal/ai"
	"helpdesk/internal/config"
	"helpdesk/internal/database"
	"helpdesk/internal/handlers"
	"helpdesk/internal/middleware"
	"helpdesk/internal/repository/mongodb"
	"helpdesk/internal/service"
)

func New(log zerolog.Logger, mgr *database.Manager, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))

	r.Get("/healthz", handlers.Health())

	// Repos + services + handlers
	users := mongodb.NewUserRepo(mgr)
	tickets := mongodb.NewTicketRepo(mgr)
	messages := mongodb.NewMessageRepo(mgr)

	tokens := service.NewTokenService(cfg)
	authSvc := service.NewAuthService(users, tokens)
	assistant := ai.New(cfg, log)

	ah := handlers.NewAuthHTTP(authSvc, tokens, log)
	th := handlers.NewTicketHTTP(tickets, log)
	mh := handlers.NewMessageHTTP(messages, tickets, log)
	aih := handlers.NewAIHTTP(assistant, log)

	requireAuth := middleware.RequireAuth(log, tokens, users)

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(20, time.Minute))
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/refresh", ah.Refresh())
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", th.Create())
		r.Get("/", th.ListMine())
		r.Get("/{id}", th.Get())
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireAdmin)
		r.Get("/tickets", th.ListAll())
		r.Patch("/tickets/{id}/status", th.SetStatus())
	})

	r.Route("/api/messages/{ticketId}", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", mh.List())
		r.Post("/", mh.Add())
	})

	r.Route("/api/ai", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/suggest-solution", aih.SuggestSolution())
		r.Post("/draft-reply", aih.DraftReply())
	})

	return r
}
