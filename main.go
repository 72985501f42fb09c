package main

import (
	"net/http"
	"os"
	"time"

	"netdefense/engine"
	"netdefense/game"
	"netdefense/searcher"
	"netdefense/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := game.DefaultConfig()
	if path := os.Getenv("BALANCE_FILE"); path != "" {
		loaded, err := game.LoadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Msg("load balance config")
		}
		cfg = loaded
		log.Info().Str("path", path).Msg("balance config loaded")
	}

	roll := game.NewRoller(uint64(time.Now().UnixNano()))
	ai := searcher.NewMinimax(searcher.WithRoller(roll))
	session := engine.NewSession(cfg, roll, ai)
	srv := server.New(session, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Int("depth", cfg.SearchDepth).Msg("network defense server listening")
	if err := http.ListenAndServe(":"+port, srv.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
