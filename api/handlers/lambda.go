package handlers

import (
	"context"
	"highscores/api/filters"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGateway answers an API Gateway proxy event.
// The returned error is always nil, failures are reported on the status code.
func (h *LeaderboardHandler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response := h.Handle(ctx, filters.NewLocalHighScoresParams(event.QueryStringParameters))

	return events.APIGatewayProxyResponse{
		StatusCode: response.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       response.Body,
	}, nil
}
