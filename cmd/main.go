package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"tmm-backend/cmd/config"
	migration "tmm-backend/cmd/database/migrate"
	"tmm-backend/cmd/database/seed"
	"tmm-backend/internal/utils"
	"tmm-backend/pkg/jwt"
	"tmm-backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before starting")
	seedData := flag.Bool("seed", false, "load the seed catalog and admin account, then exit")
	seedFile := flag.String("seed-file", "", "seed YAML file (defaults to the built-in catalog)")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *migrate || *seedData {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seedData {
		f, err := seed.Load(*seedFile)
		if err != nil {
			log.Fatalf("%v", err)
		}
		users := user.NewUserService(user.NewUserRepository(db), jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), time.Hour))
		if err := seed.Seed(ctx, db, users, f); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Info("seed complete")
		return
	}

	app, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("%v", err)
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Errorf("server stopped: %v", err)
	}

	if err := app.Close(); err != nil {
		log.Errorf("closing resources: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
