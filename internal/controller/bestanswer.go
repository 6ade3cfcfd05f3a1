package controller

import (
	"net/http"
	"time"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type BestAnswerController interface {
	Mark(c echo.Context) error
	Unmark(c echo.Context) error
}

type bestAnswerController struct {
	bestAnswerService service.BestAnswerService
	rateLimitService  service.RateLimitService
}

func newBestAnswerController(bestAnswerService service.BestAnswerService, rateLimitService service.RateLimitService) BestAnswerController {
	return &bestAnswerController{
		bestAnswerService: bestAnswerService,
		rateLimitService:  rateLimitService,
	}
}

type markBestAnswerRequest struct {
	AnswerID uint `json:"answerId"`
}

type bestAnswerResponse struct {
	QuestionID uint  `json:"questionId"`
	AnswerID   *uint `json:"answerId,omitempty"`
	Changed    bool  `json:"changed"`
}

func (b *bestAnswerController) Mark(c echo.Context) error {
	user, ok := dto.GetUserFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user")
	}

	questionID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid question id")
	}

	var request markBestAnswerRequest
	if err := c.Bind(&request); err != nil || request.AnswerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "answerId is required")
	}

	if !b.rateLimitService.TryAcquire(user.ID, model.TargetQuestion.ActionKey("best-answer"), time.Now().UTC()) {
		return mapServiceError(dto.ErrRateLimited)
	}

	outcome, err := b.bestAnswerService.Mark(c.Request().Context(), questionID, request.AnswerID, user.ID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, bestAnswerResponse{
		QuestionID: outcome.QuestionID,
		AnswerID:   &outcome.AnswerID,
		Changed:    outcome.Changed,
	})
}

func (b *bestAnswerController) Unmark(c echo.Context) error {
	user, ok := dto.GetUserFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user")
	}

	questionID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid question id")
	}

	if !b.rateLimitService.TryAcquire(user.ID, model.TargetQuestion.ActionKey("best-answer"), time.Now().UTC()) {
		return mapServiceError(dto.ErrRateLimited)
	}

	outcome, err := b.bestAnswerService.Unmark(c.Request().Context(), questionID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, bestAnswerResponse{
		QuestionID: outcome.QuestionID,
		Changed:    outcome.Changed,
	})
}
