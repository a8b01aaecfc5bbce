package main

import (
	"context"
	"estate_market/config"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/router"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
)

func serve() {
	app := fiber.New(fiber.Config{
		BodyLimit: config.ConfigInt("BODY_LIMIT_MB", 20) * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGINS", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	database.SeedData(database.DB)
	database.ConnectRedis()

	helper.Realtime = helper.NewHub(database.Redis)
	helper.Realtime.Start()
	defer helper.Realtime.Stop()

	helper.InitImageStore(context.Background())

	helper.StartSessionSweeper()
	defer helper.StopSessionSweeper()
	helper.StartStatsScheduler()
	defer helper.StopStatsScheduler()

	router.SetupRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		app.Shutdown()
	}()

	if err := app.Listen(":" + config.ConfigDefault("PORT", "8002")); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "estate-market",
		Short: "Floor plan marketplace API",
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP and websocket server",
			Run: func(cmd *cobra.Command, args []string) {
				serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and seed the admin account",
			RunE: func(cmd *cobra.Command, args []string) error {
				database.ConnectDB()
				if err := database.Migrate(database.DB); err != nil {
					return err
				}
				database.SeedData(database.DB)
				log.Println("Migration finished")
				return nil
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
