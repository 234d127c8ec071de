package main

import (
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"paytrack/internal/api"
	"paytrack/internal/config"
	"paytrack/internal/db"
	"paytrack/internal/handlers"
	"paytrack/internal/session"
	"paytrack/internal/telegram_api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found; environment variables must be set another way.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Critical: failed to load configuration: %v", err)
	}

	if err := db.InitDB(); err != nil {
		log.Fatalf("Critical: failed to initialize the database: %v", err)
	}
	defer db.CloseDB()

	if err := telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev", cfg.BotUsername); err != nil {
		log.Fatalf("Critical: failed to initialize the Telegram bot: %v", err)
	}
	botAPI := telegram_api.Client.GetAPI()

	sessionManager := session.NewSessionManager()

	// Janitor: evict idle intake sessions and purge expired OTP codes.
	stopJanitor := make(chan struct{})
	defer close(stopJanitor)
	sessionManager.StartEvictionLoop(cfg.SessionIdleTimeout, stopJanitor)
	go func() {
		ticker := time.NewTicker(cfg.OTPLifetime)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := db.PurgeExpiredOTPs(time.Now()); err != nil {
					log.Printf("main: OTP purge failed: %v", err)
				}
			case <-stopJanitor:
				return
			}
		}
	}()

	botHandler := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      telegram_api.Client,
		SessionManager: sessionManager,
	})

	apiRouter := chi.NewRouter()
	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.SetupRoutes(apiRouter, api.ApiDependencies{
		Config:    cfg,
		SecretKey: cfg.JWTSecret,
	})

	go func() {
		log.Printf("Starting HTTP API server on port %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, apiRouter); err != nil {
			log.Fatalf("Critical: HTTP server failed: %v", err)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Println("Bot and API server are up.")

	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			go botHandler.HandleMessage(update)
		}
	}
}
