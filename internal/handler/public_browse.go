// This file implements the unauthenticated browse endpoints: movie list,
// movie detail with its shows, and show detail with the live seat map.
// The seat map endpoint is the canonical re-fetch path clients use after a
// claim conflict or a SEATS_CLAIMED event on the notifier socket.
package handler

import (
	"errors"   // sentinel comparisons
	"net/http" // status codes
	"strconv"  // path parameter parsing
	"time"     // RFC3339 formatting of show times

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/cinetix/seat-reservation/internal/repository" // repository layer
)

// PublicHandler groups the read-only repositories behind the browse routes.
type PublicHandler struct {
	MovieRepo *repository.MovieRepo
	ShowRepo  *repository.ShowRepo
	SeatRepo  *repository.SeatRepo
}

// NewPublicHandler constructs a PublicHandler.  All dependencies must be
// non-nil.
func NewPublicHandler(movieRepo *repository.MovieRepo, showRepo *repository.ShowRepo, seatRepo *repository.SeatRepo) *PublicHandler {
	if movieRepo == nil || showRepo == nil || seatRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{MovieRepo: movieRepo, ShowRepo: showRepo, SeatRepo: seatRepo}
}

// movieJSON shapes a movie for API responses.
type movieJSON struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

// showJSON shapes a show for API responses.  StartsAt is RFC3339 UTC, the
// same format CreateShow accepts.
type showJSON struct {
	ID       uint64 `json:"id"`
	MovieID  uint64 `json:"movie_id"`
	StartsAt string `json:"starts_at"`
}

func newShowJSON(s repository.Show) showJSON {
	return showJSON{ID: s.ID, MovieID: s.MovieID, StartsAt: s.StartsAt.UTC().Format(time.RFC3339)}
}

// seatJSON shapes one seat of the seat map.  The claimant identity is not
// exposed publicly, only whether the seat is taken.
type seatJSON struct {
	ID     uint64 `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

// ListMovies handles GET /v1/movies and returns the full catalog.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	movies, err := h.MovieRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	items := make([]movieJSON, 0, len(movies))
	for _, m := range movies {
		items = append(items, movieJSON{ID: m.ID, Title: m.Title, PosterURL: m.PosterURL})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": items})
}

// GetMovie handles GET /v1/movies/:id and returns the movie together with
// its scheduled shows.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	m, err := h.MovieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	shows, err := h.ShowRepo.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	items := make([]showJSON, 0, len(shows))
	for _, s := range shows {
		items = append(items, newShowJSON(s))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie": movieJSON{ID: m.ID, Title: m.Title, PosterURL: m.PosterURL},
		"shows": items,
	})
}

// GetShow handles GET /v1/shows/:id and returns the show details together
// with the full seat map and each seat's current status.
func (h *PublicHandler) GetShow(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx := c.Request().Context()
	s, err := h.ShowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	seats, err := h.SeatRepo.ListByShow(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	items := make([]seatJSON, 0, len(seats))
	for _, seat := range seats {
		items = append(items, seatJSON{ID: seat.ID, Label: seat.Label, Status: seat.Status})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show":  newShowJSON(*s),
		"seats": items,
	})
}
