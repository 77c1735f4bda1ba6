package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matches/simulate", handler.SimulateMatch)
	mux.HandleFunc("GET /v1/matches", handler.ListRecentMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/commentary", handler.GetMatchCommentary)
	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListTeamMatches)
}

func registerSimulationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/shootouts/simulate", handler.SimulateShootout)
	mux.HandleFunc("POST /v1/rounds/simulate", handler.SimulateRound)
	mux.HandleFunc("POST /v1/forecasts", handler.Forecast)
}
