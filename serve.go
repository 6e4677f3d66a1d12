package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"nokanban.pro/database"
	"nokanban.pro/handlers"
	"nokanban.pro/services"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the shared-board API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	if logFile := viper.GetString("log_file"); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	db, err := database.InitDB(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewRepository(db)
	r := handlers.NewRouter(handlers.NewBoardHandler(repo))

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(viper.GetString("allowed_origins"), ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", services.PinHeader},
		AllowCredentials: true,
	})

	startSweep(repo)

	port := viper.GetString("port")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	return server.ListenAndServe()
}

// startSweep deletes boards whose updated_at is older than the configured
// threshold, once at startup and then on an interval. Every mutation
// refreshes updated_at, so an actively edited board is never swept.
func startSweep(repo *database.Repository) {
	days := viper.GetInt("cleanup_days")
	interval := time.Duration(viper.GetInt("cleanup_interval_hours")) * time.Hour

	sweep := func() {
		count, err := repo.DeleteInactive(context.Background(), days)
		if err != nil {
			log.Printf("Cleanup failed: %v", err)
			return
		}
		if count > 0 {
			log.Printf("Cleanup: deleted %d boards inactive for more than %d days", count, days)
		}
	}

	go func() {
		sweep()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			sweep()
		}
	}()
}
