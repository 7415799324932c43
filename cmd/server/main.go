package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/devjournal/configs"
	"github.com/maheshrc27/devjournal/internal/api"
	job "github.com/maheshrc27/devjournal/internal/jobs"
	"github.com/maheshrc27/devjournal/internal/queue"
	"github.com/maheshrc27/devjournal/internal/repository"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY must be set")
	}
	if cfg.CronSecret == "" {
		log.Println("Warning: CRON_SECRET is not set, /schedule-sweep will reject every request")
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	if err := repository.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer redisClient.Close()

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)

	resolver := service.NewResolver(postRepo, time.Now)
	scheduler := queue.NewScheduler(client, time.Now)
	authService := service.NewAuthService(cfg.SecretKey, service.NewGoogleProvider(*cfg), userRepo)
	r2Service := service.NewR2Service(cfg.R2)

	app := api.NewApp(*cfg, api.Services{
		Auth:      authService,
		Users:     service.NewUserService(userRepo),
		Posts:     service.NewPostService(postRepo, scheduler, time.Now),
		Reactions: service.NewReactionService(postRepo, reactionRepo),
		Resolver:  resolver,
		Hours:     service.NewHoursService(postRepo, cfg.RequiredHours),
		Drafts:    service.NewDraftService(redisClient, time.Now),
		Media:     service.NewMediaService(mediaAssetRepo, r2Service),
		DB:        db,
	})

	// cron jobs
	sweepJob := job.NewPublishSweepJob(resolver)

	c := cron.New()
	if err := sweepJob.Register(c, cfg.SweepInterval); err != nil {
		log.Fatalf("Invalid SWEEP_INTERVAL %q: %v", cfg.SweepInterval, err)
	}
	c.Start()
	defer c.Stop()

	// catch up on anything that came due while the server was down
	go sweepJob.Sweep()

	//queue
	queueW := queue.NewQueue(resolver)
	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})

	mux := asynq.NewServeMux()
	queueW.RegisterHandlers(mux)

	log.Println("Starting the Asynq server...")
	if err := server.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, server)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	server.Shutdown()

	log.Println("Server shutdown complete.")
}
