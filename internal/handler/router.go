package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ambientHandler "github.com/wanyue/mindgarden/backend/internal/handler/ambient"
	meditationHandler "github.com/wanyue/mindgarden/backend/internal/handler/meditation"
	personaHandler "github.com/wanyue/mindgarden/backend/internal/handler/persona"
	sessionHandler "github.com/wanyue/mindgarden/backend/internal/handler/session"
	speechHandler "github.com/wanyue/mindgarden/backend/internal/handler/speech"
	middlewarePkg "github.com/wanyue/mindgarden/backend/internal/middleware"
	ambientModel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
	personaModel "github.com/wanyue/mindgarden/backend/internal/model/persona"
	"github.com/wanyue/mindgarden/backend/internal/service/conversation"
	sessionService "github.com/wanyue/mindgarden/backend/internal/service/session"
	"github.com/wanyue/mindgarden/backend/pkg/utils"
)

// Services bundles everything the router wires together. Optional entries may
// be nil; the affected endpoints degrade to an explicit unavailable response.
type Services struct {
	Personas    personaModel.Store
	Categories  ambientModel.Store
	Sessions    *sessionService.Service
	Registry    *conversation.Registry
	Synthesizer speechHandler.Synthesizer
	TrackFinder ambientHandler.TrackFinder
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"message": "Mind Garden Voice Assistant API",
				"status":  "active",
			})
		})

		personaHandler.New(svcs.Personas).RegisterRoutes(api)
		ambientHandler.New(svcs.Categories, svcs.TrackFinder).RegisterRoutes(api)

		if svcs.Sessions != nil {
			sessionHandler.New(svcs.Sessions, svcs.Personas, svcs.Categories).RegisterRoutes(api)
		}

		if svcs.Synthesizer != nil {
			speechHandler.New(svcs.Synthesizer, svcs.Personas).RegisterRoutes(api)
		}

		if svcs.Registry != nil {
			meditationHandler.New(svcs.Registry, svcs.Sessions, svcs.Personas).RegisterWebSocketRoutes(api)
		}
	})

	return r
}
