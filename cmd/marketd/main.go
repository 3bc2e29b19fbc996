package main

import (
	"fmt"
	"net/http"

	"github.com/calebomondi/irec-smartcontract/internal/config"
	"github.com/calebomondi/irec-smartcontract/internal/config/di"
	"github.com/calebomondi/irec-smartcontract/internal/daemon"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	go health()

	zap.L().With(zap.String("port", config.Get().HealthPort)).Info("Marketd Started")

	daemon.NewDaemon(
		container.GetElastic(),
		container.GetApiServer(),
		container.GetMessenger(),
		container.GetRegistry(),
	).Execute()
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health endpoint")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
