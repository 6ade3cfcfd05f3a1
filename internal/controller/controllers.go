package controller

import (
	"errors"
	"net/http"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Controllers interface {
	Vote() VoteController
	BestAnswer() BestAnswerController
	Bookmark() BookmarkController
	Info() InfoController

	Route(e *echo.Echo)
}

type controllers struct {
	voteController       VoteController
	bestAnswerController BestAnswerController
	bookmarkController   BookmarkController
	infoController       InfoController
	authService          service.AuthService
}

func NewControllers(services service.Services) Controllers {
	voteController := newVoteController(services.Vote(), services.RateLimit())
	bestAnswerController := newBestAnswerController(services.BestAnswer(), services.RateLimit())
	bookmarkController := newBookmarkController(services.Bookmark(), services.RateLimit())
	infoController := newInfoController()
	return &controllers{
		voteController:       voteController,
		bestAnswerController: bestAnswerController,
		bookmarkController:   bookmarkController,
		infoController:       infoController,
		authService:          services.Auth(),
	}
}

func (c controllers) Vote() VoteController {
	return c.voteController
}

func (c controllers) BestAnswer() BestAnswerController {
	return c.bestAnswerController
}

func (c controllers) Bookmark() BookmarkController {
	return c.bookmarkController
}

func (c controllers) Info() InfoController {
	return c.infoController
}

func (c controllers) Route(e *echo.Echo) {
	e.GET("/", c.infoController.Info)

	authenticated := e.Group("", AuthMiddleware(c.authService))

	authenticated.POST("/questions/:id/votes", c.voteController.Vote(model.TargetQuestion))
	authenticated.POST("/answers/:id/votes", c.voteController.Vote(model.TargetAnswer))
	authenticated.POST("/comments/:id/votes", c.voteController.Vote(model.TargetComment))

	authenticated.PUT("/questions/:id/best-answer", c.bestAnswerController.Mark)
	authenticated.DELETE("/questions/:id/best-answer", c.bestAnswerController.Unmark)

	authenticated.POST("/questions/:id/bookmark", c.bookmarkController.Toggle(model.TargetQuestion))
	authenticated.POST("/answers/:id/bookmark", c.bookmarkController.Toggle(model.TargetAnswer))
}

// mapServiceError translates sentinel errors into distinct HTTP codes, so
// callers can tell "wait and retry" from "not allowed".
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, dto.ErrSelfVote):
		return echo.NewHTTPError(http.StatusForbidden, "voting on your own content is not allowed")
	case errors.Is(err, dto.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many actions, wait and retry")
	case errors.Is(err, dto.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "target not found")
	case errors.Is(err, dto.ErrInvalidTargetKind):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid target kind")
	case errors.Is(err, dto.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "concurrent modification, retry the request")
	case errors.Is(err, dto.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	default:
		logrus.Errorf("Unhandled service error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
