// This file implements the authenticated ADMIN endpoints for catalog and
// show management.  Show creation and deletion delegate to the reservation
// lifecycle manager so the seat grid is always created and removed in the
// same transaction as the show row.
package handler

import (
	"errors"   // sentinel comparisons
	"net/http" // status codes
	"strconv"  // path parameter parsing
	"strings"  // request field trimming
	"time"     // show start time parsing

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/cinetix/seat-reservation/internal/repository"  // catalog persistence
	"github.com/cinetix/seat-reservation/internal/reservation" // lifecycle manager
)

// AdminHandler bundles the dependencies for admin operations.
type AdminHandler struct {
	MovieRepo *repository.MovieRepo
	Lifecycle *reservation.Lifecycle
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(movieRepo *repository.MovieRepo, lifecycle *reservation.Lifecycle) *AdminHandler {
	if movieRepo == nil || lifecycle == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{MovieRepo: movieRepo, Lifecycle: lifecycle}
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var body struct {
		Title     string `json:"title"`
		PosterURL string `json:"poster_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" || strings.TrimSpace(body.PosterURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and poster_url are required"})
	}
	m := &repository.Movie{Title: body.Title, PosterURL: strings.TrimSpace(body.PosterURL)}
	if err := h.MovieRepo.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID, "title": m.Title})
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.  Shows referencing the
// movie and their seats are removed by the store's cascading constraints,
// so the whole subtree disappears atomically.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.MovieRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateShow handles POST /v1/admin/shows.  Rows and cols are optional;
// when omitted the configured auditorium defaults apply.  The show row and
// its full seat grid are created in one transaction: a failure creating
// seats rolls back the show too.
func (h *AdminHandler) CreateShow(c echo.Context) error {
	var body struct {
		MovieID  uint64 `json:"movie_id"`
		StartsAt string `json:"starts_at"`
		Rows     int    `json:"rows"`
		Cols     int    `json:"cols"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(body.StartsAt))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at format"})
	}

	showID, err := h.Lifecycle.CreateShow(c.Request().Context(), body.MovieID, startsAt, body.Rows, body.Cols)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat grid dimensions"})
		case errors.Is(err, reservation.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create show"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": showID})
}

// DeleteShow handles DELETE /v1/admin/shows/:id.  The show and all of its
// seats are removed atomically; an in-flight claim either commits before
// the delete or fails cleanly.
func (h *AdminHandler) DeleteShow(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Lifecycle.DeleteShow(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, reservation.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case errors.Is(err, reservation.ErrTransient):
			return c.JSON(http.StatusConflict, echo.Map{"error": "delete contended, try again", "retryable": true})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
