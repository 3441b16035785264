package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"storefront_api/config"
	"storefront_api/internal/auth"
	"storefront_api/internal/storefront/app"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml config, empty for defaults and env")
	logPath := flag.String("log", "", "append logs to this file as well as stderr")
	adminToken := flag.String("admin-token", "", "print an admin token for this subject and exit")
	adminTokenTTL := flag.Duration("admin-token-ttl", 24*time.Hour, "validity of the token printed by -admin-token")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if *adminToken != "" {
		if err := printAdminToken(os.Stdout, cfg, *adminToken, *adminTokenTTL); err != nil {
			log.Fatalf("issue admin token: %v", err)
		}
		return
	}

	var writer io.Writer
	if *logPath != "" {
		file, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		writer = file
	}

	log.Printf("Started storefront api")
	server := app.NewStorefrontServer(cfg, writer)
	go func() {
		if err := server.Run(context.Background()); err != nil {
			log.Fatalf("storefront server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"storefront": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return server.Shutdown(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Storefront api exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// printAdminToken writes a token that passes the cache eviction guard.
func printAdminToken(w io.Writer, cfg *config.AppConfig, subject string, ttl time.Duration) error {
	token, err := auth.IssueToken(cfg.Auth.JWTSecret, subject, auth.RoleAdmin, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
