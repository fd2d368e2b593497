package handlers

import (
	"context"
	"encoding/json"
	"highscores/api/dto"
	"highscores/api/filters"
	"highscores/pkg/logger"
	"highscores/pkg/messages"
	"highscores/pkg/metrics"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LeaderboardService is what the handler needs from the leaderboard service.
type LeaderboardService interface {
	GetLocalHighScores(ctx context.Context, filters *filters.LocalHighScoresFilter) (*dto.LocalHighScores, error)
}

// LeaderboardHandler answers the leaderboard requests.
type LeaderboardHandler struct {
	leaderboardService LeaderboardService
	logger             *logger.Logger
	metrics            *metrics.LeaderboardMetrics
}

// LeaderboardHandlerDependencies is the dependency list of the handler.
// Metrics are optional.
type LeaderboardHandlerDependencies struct {
	LeaderboardService LeaderboardService
	Logger             *logger.Logger
	Metrics            *metrics.LeaderboardMetrics
}

// Response is the status code and serialized JSON body of a request.
type Response struct {
	StatusCode int
	Body       string
}

// Create a new instance of the leaderboard handler.
func NewLeaderboardHandler(deps *LeaderboardHandlerDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: deps.LeaderboardService,
		logger:             deps.Logger,
		metrics:            deps.Metrics,
	}
}

// Handle validates the request type and builds the local high score leaderboard.
// It never fails: any error becomes a 500 response without details.
func (h *LeaderboardHandler) Handle(ctx context.Context, qp filters.LocalHighScoresParams) (response Response) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorf("Recovered while querying the local high score leaderboard: %v", r)
			response = h.sendResponse(http.StatusInternalServerError, dto.ErrorResponse{Message: messages.InternalServerError})
		}

		if h.metrics != nil {
			h.metrics.ObserveRequest(response.StatusCode, time.Since(start))
		}
	}()

	h.logger.Infof("Received event with query parameters: %+v", qp)

	if qp.Type != messages.LocalHighScoresType {
		return h.sendResponse(http.StatusBadRequest, dto.ErrorResponse{Message: messages.InvalidRequestType})
	}

	h.logger.Infof("Fetching local high score leaderboard for country code: %s", qp.CountryCode)

	result, err := h.leaderboardService.GetLocalHighScores(ctx, filters.NewLocalHighScoresFilter(qp))
	if err != nil {
		h.logger.Errorf("Error querying the store for local high score leaderboard: %v", err)
		return h.sendResponse(http.StatusInternalServerError, dto.ErrorResponse{Message: messages.InternalServerError})
	}

	return h.sendResponse(http.StatusOK, dto.NewLocalHighScoresResponse(result))
}

// Handler for getting the local high scores over HTTP.
func (h *LeaderboardHandler) GetLocalHighScores(c *gin.Context) {
	var qp filters.LocalHighScoresParams

	if err := c.ShouldBindQuery(&qp); err != nil {
		response := h.sendResponse(http.StatusBadRequest, dto.ErrorResponse{Message: messages.InvalidRequestType})
		c.Data(response.StatusCode, gin.MIMEJSON, []byte(response.Body))
		return
	}

	response := h.Handle(c.Request.Context(), qp)
	c.Data(response.StatusCode, gin.MIMEJSON, []byte(response.Body))
}

// sendResponse serializes the message into the response body.
func (h *LeaderboardHandler) sendResponse(statusCode int, message any) Response {
	body, err := json.Marshal(message)
	if err != nil {
		h.logger.Errorf("Couldn't serialize the response: %v", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"message":"` + messages.InternalServerError + `"}`,
		}
	}

	return Response{StatusCode: statusCode, Body: string(body)}
}
