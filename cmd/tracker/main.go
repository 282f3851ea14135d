package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/drakos74/iris-pipeline/internal/tracker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultPort = "5000"

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", tracker.Handler(tracker.NewMemory()))
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("tracker listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("tracker stopped")
	}
}
