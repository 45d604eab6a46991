package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/farmasys/orcamento-api/internal/config"
	"github.com/farmasys/orcamento-api/internal/database"
	"github.com/farmasys/orcamento-api/internal/router"
)

func main() {
	cfg := config.Load()

	db := database.New(cfg.DatabaseURL)
	r := router.New(cfg, db)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Report rendering can follow a slow query; give writes the query
		// timeout plus headroom.
		WriteTimeout: cfg.QueryTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
