package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	broker := openBroker(configs)
	defer broker.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, broker, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start scheduler jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		RabbitHost:     os.Getenv("RABBIT_HOST"),
		RabbitPort:     envOr("RABBIT_PORT", "5672"),
		RabbitUser:     os.Getenv("RABBIT_USER"),
		RabbitPassword: os.Getenv("RABBIT_PASSWORD"),
		RabbitVHost:    os.Getenv("RABBIT_VHOST"),

		AdminEmail: os.Getenv("ADMIN_ALERT_EMAIL"),

		SearchTimeout:     os.Getenv("DRIVER_SEARCH_TIMEOUT"),
		SearchMaxAttempts: os.Getenv("DRIVER_SEARCH_MAX_ATTEMPTS"),
		RetryMaxAttempts:  os.Getenv("RETRY_MAX_ATTEMPTS"),
		RetryMaxAge:       os.Getenv("RETRY_MAX_AGE"),
		RetryPurgeGrace:   os.Getenv("RETRY_PURGE_GRACE"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&partnerrepo.PartnerDTO{},
		&userrepo.UserDTO{},
		&userrepo.DeviceTokenDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func openBroker(configs cmd.Config) *rabbitmq.Client {
	port, err := strconv.Atoi(configs.RabbitPort)
	if err != nil {
		log.Fatalf("Invalid RABBIT_PORT: %v", err)
	}

	broker, err := rabbitmq.Dial(rabbitmq.Config{
		Host:     configs.RabbitHost,
		Port:     port,
		User:     configs.RabbitUser,
		Password: configs.RabbitPassword,
		VHost:    configs.RabbitVHost,
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitmq: %v", err)
	}

	if err := broker.DeclareQueues(); err != nil {
		log.Fatalf("Failed to declare queues: %v", err)
	}

	return broker
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
