package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/hackside/backend/auth"
	"github.com/hackside/backend/event"
	"github.com/hackside/backend/repoeval"
	"github.com/hackside/backend/subm"
	"github.com/hackside/backend/team"
	"github.com/hackside/backend/user"
)

type HttpServer struct {
	userSrvc  *user.UserSrvc
	eventSrvc *event.EventSrvc
	teamSrvc  *team.TeamSrvc
	submSrvc  *subm.SubmSrvc
	evalSrvc  *repoeval.Srvc

	// boardCache holds computed leaderboards for a few seconds; sfGroup
	// collapses concurrent recomputation of the same board.
	boardCache *cache.Cache
	sfGroup    singleflight.Group

	jwtKey []byte
	router *chi.Mux
}

func NewHttpServer(
	userSrvc *user.UserSrvc,
	eventSrvc *event.EventSrvc,
	teamSrvc *team.TeamSrvc,
	submSrvc *subm.SubmSrvc,
	evalSrvc *repoeval.Srvc,
	jwtKey []byte,
	allowedOrigins []string,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("hackside", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		userSrvc:   userSrvc,
		eventSrvc:  eventSrvc,
		teamSrvc:   teamSrvc,
		submSrvc:   submSrvc,
		evalSrvc:   evalSrvc,
		boardCache: cache.New(5*time.Second, 10*time.Second),
		jwtKey:     jwtKey,
		router:     router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Router exposes the configured mux, mainly for tests.
func (httpserver *HttpServer) Router() *chi.Mux {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Get("/health", httpserver.health)

	r.Post("/auth/register", httpserver.authRegister)
	r.Post("/auth/login", httpserver.authLogin)
	r.Get("/auth/whoami", httpserver.authWhoami)

	r.Post("/events", httpserver.createEvent)
	r.Get("/events", httpserver.listMyEvents)
	r.Get("/events/{eventUuid}", httpserver.getEvent)
	r.Post("/events/{eventUuid}/images/{kind}", httpserver.uploadEventImage)

	r.Post("/events/{eventUuid}/teams", httpserver.createTeam)
	r.Get("/events/{eventUuid}/teams", httpserver.listTeams)
	r.Get("/events/{eventUuid}/teams/open", httpserver.listOpenTeams)
	r.Get("/events/{eventUuid}/my-team", httpserver.myTeam)
	r.Post("/events/{eventUuid}/teams/{teamUuid}/requests", httpserver.sendJoinRequest)
	r.Post("/events/{eventUuid}/teams/{teamUuid}/requests/{requestUuid}/accept", httpserver.acceptJoinRequest)
	r.Post("/events/{eventUuid}/teams/{teamUuid}/requests/{requestUuid}/reject", httpserver.rejectJoinRequest)
	r.Post("/events/{eventUuid}/teams/{teamUuid}/members/remove", httpserver.removeTeamMember)
	r.Delete("/events/{eventUuid}/teams/{teamUuid}", httpserver.deleteTeam)

	r.Post("/events/{eventUuid}/submit/ppt", httpserver.submitDeck)
	r.Post("/events/{eventUuid}/submit/repo", httpserver.submitRepo)
	r.Get("/events/{eventUuid}/my-submissions", httpserver.mySubmissions)
	r.Get("/events/{eventUuid}/submissions", httpserver.listSubmissions)
	r.Patch("/events/{eventUuid}/rounds/{roundId}/submissions/{teamUuid}", httpserver.patchScore)
	r.Post("/events/{eventUuid}/submissions/{submUuid}/ai-overall", httpserver.recordAiOverall)
	r.Post("/events/{eventUuid}/teams/{teamUuid}/viva-score", httpserver.recordVivaScore)

	r.Get("/events/{eventUuid}/leaderboard", httpserver.getLeaderboard)

	r.Get("/evaluations/{evalUuid}", httpserver.getEvaluation)
	r.Get("/evaluations/{evalUuid}/report", httpserver.downloadReport)
}

func (httpserver *HttpServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
