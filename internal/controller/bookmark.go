package controller

import (
	"net/http"
	"time"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type BookmarkController interface {
	Toggle(kind model.TargetKind) echo.HandlerFunc
}

type bookmarkController struct {
	bookmarkService  service.BookmarkService
	rateLimitService service.RateLimitService
}

func newBookmarkController(bookmarkService service.BookmarkService, rateLimitService service.RateLimitService) BookmarkController {
	return &bookmarkController{
		bookmarkService:  bookmarkService,
		rateLimitService: rateLimitService,
	}
}

type bookmarkResponse struct {
	TargetID   uint `json:"targetId"`
	Bookmarked bool `json:"bookmarked"`
}

func (b *bookmarkController) Toggle(kind model.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := dto.GetUserFromContext(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing user")
		}

		targetID, err := parseID(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid target id")
		}

		if !b.rateLimitService.TryAcquire(user.ID, kind.ActionKey("bookmark"), time.Now().UTC()) {
			return mapServiceError(dto.ErrRateLimited)
		}

		bookmarked, err := b.bookmarkService.Toggle(c.Request().Context(), user.ID, kind, targetID)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(http.StatusOK, bookmarkResponse{
			TargetID:   targetID,
			Bookmarked: bookmarked,
		})
	}
}
