package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"kvcrud/record"
	"kvcrud/store"
)

// Api serves a record store over HTTP. The store itself is not safe for
// concurrent use, so every handler takes mu before touching it.
type Api struct {
	Address string
	Port    int
	Store   store.Store[string, record.Record]
	Router  *chi.Mux
	Logger  *slog.Logger

	mu sync.Mutex
}

func New(address string, port int, s store.Store[string, record.Record], logger *slog.Logger) *Api {
	a := &Api{
		Address: address,
		Port:    port,
		Store:   s,
		Logger:  logger,
	}
	a.initRouter()
	return a
}

func (a *Api) initRouter() {
	a.Router = chi.NewRouter()
	a.Router.Route("/records", func(r chi.Router) {
		r.Post("/", a.SaveRecordHandler)
		r.Get("/", a.ListRecordsHandler)
		r.Route("/{recordID}", func(r chi.Router) {
			r.Get("/", a.GetRecordHandler)
			r.Put("/", a.UpdateRecordHandler)
			r.Delete("/", a.DeleteRecordHandler)
		})
	})
	a.Router.Get("/stats", a.StatsHandler)
}

func (a *Api) Start() error {
	addr := fmt.Sprintf("%s:%d", a.Address, a.Port)
	a.Logger.Info("starting api", "addr", addr)
	return http.ListenAndServe(addr, a.Router)
}
