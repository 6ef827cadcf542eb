package main

import (
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	"dispatch/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(postgres.Open(buildDSN(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	batchHandler, err := root.CreateProcessOrderBatchCommandHandler()
	if err != nil {
		log.Fatalf("Error building assignment pipeline: %v", err)
	}

	jobManager := root.CreateJobManager(batchHandler)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting scheduled jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, batchHandler, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn(".env not loaded", "error", err)
	}

	config := cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		MapsBaseURL:        os.Getenv("MAPS_BASE_URL"),
		MapsAPIKey:         os.Getenv("MAPS_API_KEY"),
		MapsTimeoutSeconds: os.Getenv("MAPS_TIMEOUT_SECONDS"),

		ScoringMode:          os.Getenv("SCORING_MODE"),
		ETAGateEnabled:       os.Getenv("ETA_GATE_ENABLED"),
		GeocodeFailurePolicy: os.Getenv("GEOCODE_FAILURE_POLICY"),
		DefaultLocationLat:   os.Getenv("DEFAULT_LOCATION_LAT"),
		DefaultLocationLng:   os.Getenv("DEFAULT_LOCATION_LNG"),

		ImmediatePassSchedule:    os.Getenv("IMMEDIATE_PASS_SCHEDULE"),
		SubscriptionPassSchedule: os.Getenv("SUBSCRIPTION_PASS_SCHEDULE"),
	}

	pflag.StringVarP(&config.HTTPPort, "port", "p", config.HTTPPort, "port to listen on")
	pflag.Parse()

	return config
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildDSN(config cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)
}

func startWebServer(root cmd.CompositionRoot, batchHandler *commands.ProcessOrderBatchCommandHandler, port string) {
	e := echo.New()

	server := root.CreateHTTPServer(batchHandler)
	server.Register(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
