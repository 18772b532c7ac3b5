package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/proxx/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.jwt, a.cookies, a.ws, a.records,
	)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/open", game.Open)
	a.router.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /v1/game/{id}/unflag", game.Unflag)
	a.router.HandleFunc("POST /v1/game/{id}/batch", game.Batch)
	a.router.HandleFunc("GET /v1/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /v1/records", game.Records)
	a.router.HandleFunc("GET /v1/healthz", handlers.Health)
}
