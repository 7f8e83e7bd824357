package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"skill-quest/internal/app"
	"skill-quest/internal/config"
	"skill-quest/internal/logger"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "email of an existing user (required)")
	flag.Parse()
	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	container, err := app.New(cfg, db)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer container.Close()

	ctx := context.Background()
	user, err := container.Services.Users.GetUser(ctx, *email)
	if err != nil {
		log.Fatal("Failed to look up user", zap.Error(err))
	}
	if user == nil {
		log.Fatal("No user with this email", zap.String("email", *email))
	}

	token, err := container.Services.Auth.IssueAccessToken(user.Email)
	if err != nil {
		log.Fatal("Failed to sign token", zap.Error(err))
	}
	fmt.Println(token.AccessToken)
}
