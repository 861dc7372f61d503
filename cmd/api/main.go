package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/recipeai/backend/config"
	"github.com/recipeai/backend/internal/api"
	"github.com/recipeai/backend/internal/database"
	"github.com/recipeai/backend/internal/events"
	"github.com/recipeai/backend/internal/router"
	"github.com/recipeai/backend/internal/server"
	"github.com/recipeai/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The Redis cache is optional: without it the dietary advisor recomputes
	// restrictions per request.
	var redisClient *redis.Client
	if redisClient, err = database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, dietary cache disabled: %v", err)
		redisClient = nil
	}

	llmClient, err := service.NewGroqClient(cfg.GroqAPIKey, cfg.GroqAPIURL, cfg.GroqModel)
	if err != nil {
		log.Fatalf("Failed to create completion client: %v", err)
	}

	searchClient, err := service.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyAPIURL,
		cfg.TavilySearchDepth, cfg.TavilyDomains, cfg.TavilyMaxResults)
	if err != nil {
		log.Fatalf("Failed to create search client: %v", err)
	}

	var archive service.InvoiceArchiver
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Printf("S3 unavailable, invoice archiving disabled: %v", err)
		} else {
			archive = service.NewInvoiceArchive(s3Config)
		}
	}

	var publisher service.EventPublisher
	if cfg.RabbitMQURL != "" {
		p, err := events.NewPantryUpdatedPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("RabbitMQ unavailable, event publishing disabled: %v", err)
		} else {
			defer func() { _ = p.Close() }()
			publisher = p
		}
	}

	ingredientService := service.NewIngredientService(db, cfg.FoodExpiryDays)
	recipeService := service.NewRecipeService(db)
	dietaryService := service.NewDietaryService(searchClient, llmClient, redisClient, cfg.TavilyMaxResults)
	chefService := service.NewChefService(llmClient, searchClient, dietaryService, recipeService)
	invoiceService := service.NewInvoiceService(llmClient, service.NewPDFTextExtractor(), ingredientService, archive, publisher)

	engine := router.SetupRouter(
		api.NewIngredientHandler(ingredientService, publisher),
		api.NewRecipeHandler(chefService, recipeService, ingredientService),
		api.NewInvoiceHandler(invoiceService),
	)

	srv := server.NewServer(engine)
	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
