package main

import (
	"log"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"mamafit-chatbot/internal/config"
	"mamafit-chatbot/internal/db"
	"mamafit-chatbot/internal/dialog"
	"mamafit-chatbot/internal/messenger"
	"mamafit-chatbot/internal/server"
	"mamafit-chatbot/internal/session"
	"mamafit-chatbot/internal/store"
)

func main() {
	cfg := config.Load()

	replies, err := dialog.LoadReplyTable(cfg.RepliesFile)
	if err != nil {
		log.Fatalf("failed to load reply table: %v", err)
	}
	images, err := dialog.LoadProductImages(cfg.ProductImagesFile)
	if err != nil {
		log.Fatalf("failed to load product images: %v", err)
	}
	facts := dialog.LoadBusinessFacts(cfg.BusinessFactsFile)

	client := openai.NewClient(cfg.OpenAIAPIKey)
	classifier := dialog.NewOpenAIClassifier(client, cfg.Model, replies, facts)
	responder := dialog.NewOpenAISmartResponder(client, cfg.Model, facts)
	engine := dialog.NewEngine(classifier, responder, session.NewStore(), replies, images, cfg.ConfidenceThreshold)

	var sender messenger.Sender
	if cfg.PageAccessToken != "" {
		sender = messenger.NewGraphClient(cfg.PageAccessToken)
	}

	var turnlog *store.TurnLog
	if cfg.DatabaseURL != "" {
		database, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		defer database.Close()
		if err := database.RunMigrations("./migrations"); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		turnlog = store.NewTurnLog(database)
		log.Println("database connection established")
	} else {
		log.Println("warning: DB_URL not provided, turn log disabled")
	}

	s := server.New(cfg, engine, sender, turnlog)
	addr := ":" + cfg.Port
	log.Printf("mamafit server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
