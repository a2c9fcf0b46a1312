package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/hafiz27/billflow/configs"
	"github.com/hafiz27/billflow/internal/api/handlers"
	"github.com/hafiz27/billflow/internal/api/middleware"
	job "github.com/hafiz27/billflow/internal/jobs"
	"github.com/hafiz27/billflow/internal/queue"
	"github.com/hafiz27/billflow/internal/repository"
	"github.com/hafiz27/billflow/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == cfg.FrontendURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	userService := service.NewUserService(userRepo)
	planService := service.NewPlanService(planRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	billplzService := service.NewBillplzService(*cfg, subscriptionRepo, paymentRepo)
	receiptService := service.NewReceiptService(*cfg)
	paymentService := service.NewPaymentService(userRepo, planRepo, subscriptionRepo, paymentRepo, billplzService, receiptService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	plan := handlers.NewPlanHandler(planService)
	app.Get("/plans", plan.ListPlans)
	app.Get("/plans/:planId", plan.GetPlan)

	webhook := handlers.NewWebhookHandler(paymentService)
	app.Post("/api/billplz/callback", webhook.BillplzCallback)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	subscription := handlers.NewSubscriptionHandler(subscriptionService)
	api.Get("/subscriptions/my", subscription.GetMySubscription)
	api.Post("/subscriptions/cancel", subscription.CancelSubscription)

	payment := handlers.NewPaymentHandler(paymentService, client)
	api.Post("/payments/create", payment.CreateCheckout)
	api.Get("/payments/history", payment.GetPaymentHistory)
	api.Get("/payments/verify", payment.VerifyPayment)

	// cron jobs
	expiryJob := job.NewSubscriptionExpiryJob(subscriptionService)

	// queue
	queueW := queue.NewQueue(paymentService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", expiryJob.ProcessExpired)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePaymentExpire, queueW.HandlePaymentExpireTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
