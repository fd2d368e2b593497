package main

import (
	"context"
	"highscores/api/modules"
	"highscores/pkg/config"
	"highscores/pkg/logger"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// Lambda entrypoint answering the API Gateway proxy events.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load the configuration: %v", err)
	}

	logger, err := logger.CreateLogger(os.Stdout, cfg.Bucket)
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer logger.Close()

	module, err := modules.NewModule(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Couldn't create the module: %v", err)
	}
	defer module.Close()

	lambda.Start(func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		response, err := module.LeaderboardHandler.HandleAPIGateway(ctx, event)

		// Each invocation ships its own log.
		if flushErr := logger.Flush(ctx); flushErr != nil {
			log.Printf("Couldn't upload the invocation log: %v", flushErr)
		}

		return response, err
	})
}
