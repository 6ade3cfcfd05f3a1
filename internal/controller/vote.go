package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type VoteController interface {
	Vote(kind model.TargetKind) echo.HandlerFunc
}

type voteController struct {
	voteService      service.VoteService
	rateLimitService service.RateLimitService
}

func newVoteController(voteService service.VoteService, rateLimitService service.RateLimitService) VoteController {
	return &voteController{
		voteService:      voteService,
		rateLimitService: rateLimitService,
	}
}

type voteRequest struct {
	Direction string `json:"direction"`
}

type voteResponse struct {
	TargetID  uint   `json:"targetId"`
	VoteCount int    `json:"voteCount"`
	State     string `json:"state"`
}

func (v *voteController) Vote(kind model.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := dto.GetUserFromContext(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing user")
		}

		targetID, err := parseID(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid target id")
		}

		var request voteRequest
		if err := c.Bind(&request); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		direction, err := parseDirection(request.Direction)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "direction must be \"up\" or \"down\"")
		}

		if !v.rateLimitService.TryAcquire(user.ID, kind.ActionKey("vote"), time.Now().UTC()) {
			return mapServiceError(dto.ErrRateLimited)
		}

		outcome, err := v.voteService.ApplyVote(c.Request().Context(), user.ID, kind, targetID, direction)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(http.StatusOK, voteResponse{
			TargetID:  outcome.TargetID,
			VoteCount: outcome.NewVoteCount,
			State:     outcome.Transition.String(),
		})
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseDirection(raw string) (model.Direction, error) {
	switch raw {
	case "up":
		return model.DirectionUp, nil
	case "down":
		return model.DirectionDown, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", raw)
	}
}
