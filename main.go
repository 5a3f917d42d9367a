// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tcm-webshop/controllers"
	"tcm-webshop/routes"
	"tcm-webshop/store"
	"tcm-webshop/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Set the JWT secret key
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JwtKey = []byte(secret)
	} else {
		logger.Warn("JWT_SECRET not set, using the development default")
	}

	// Initialize EmailService; nil disables mail
	emailService := utils.NewEmailService()
	if emailService == nil {
		logger.Warn("SENDGRID_API_KEY not set, order confirmation mail disabled")
	}

	// Pick the storage backend: MongoDB when MONGO_URI is set, otherwise the
	// in-memory store for local runs
	var st store.Store
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		client, err := store.Connect(uri)
		if err != nil {
			logger.Fatal("mongodb connect failed", zap.Error(err))
		}
		defer func() {
			if err := client.Disconnect(context.TODO()); err != nil {
				logger.Error("mongodb disconnect failed", zap.Error(err))
			}
		}()
		st = store.NewMongo(client)
		logger.Info("using mongodb store")
	} else {
		st = store.NewMemory()
		logger.Info("MONGO_URI not set, using in-memory store")
	}

	// Seed the demo catalog and the admin account
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("admin password hash failed", zap.Error(err))
	}
	if err := store.EnsureSeed(context.Background(), st, string(adminHash)); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	// Initialize controllers
	userController := controllers.NewUserController(st, logger)
	productController := controllers.NewProductController(st, logger)
	orderController := controllers.NewOrderController(st, emailService, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
