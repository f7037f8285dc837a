package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/reaandrew/cloudauditor/api"
	"github.com/reaandrew/cloudauditor/config"
	"github.com/reaandrew/cloudauditor/repositories"
	"github.com/reaandrew/cloudauditor/services"
	log "github.com/sirupsen/logrus"
)

var Version string

func setupLogging(lambdaMode bool) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)

	if lambdaMode {
		// CloudWatch indexes JSON fields.
		log.SetFormatter(&log.JSONFormatter{})
		return
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func applyLogLevel(cfg config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Ignoring invalid log level '%s'", cfg.LogLevel)
		return
	}
	log.SetLevel(level)
}

func main() {
	_, lambdaMode := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME")
	setupLogging(lambdaMode)

	if lambdaMode {
		log.Println("Starting in Lambda mode")
		startLambda()
		return
	}

	log.Println("Starting in CLI mode")
	cli := &Cli{}
	if err := cli.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func startLambda() {
	cfg, err := config.Load(os.Getenv("CLOUDAUDITOR_CONFIG"))
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	applyLogLevel(cfg)

	repository, err := repositories.CreateRepository(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Error creating findings repository: %v", err)
	}
	defer repository.Close()

	service := services.NewFindingsService(repository, cfg.StrictStats)
	lambda.Start(NewLambdaHandler(api.NewApi(service)))
}
