package handler

import (
	"context"  // request-scoped context passed to the coordinator
	"errors"   // errors.Is/As comparisons against the engine taxonomy
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/cinetix/seat-reservation/internal/reservation" // engine contract and errors
)

// SeatClaimer is the slice of the reservation coordinator the claim
// endpoint needs.  Declared here so tests can exercise the handler with a
// stub instead of a full store.
type SeatClaimer interface {
	Claim(ctx context.Context, req reservation.ClaimRequest) (reservation.ClaimOutcome, error)
}

// ClaimHandler exposes the reservation coordinator over HTTP.  JWT
// authentication has already run; the subject claim is the claimant
// identity.
type ClaimHandler struct {
	Coordinator SeatClaimer
}

// NewClaimHandler constructs a ClaimHandler.
func NewClaimHandler(co SeatClaimer) *ClaimHandler {
	if co == nil {
		panic("nil coordinator passed to NewClaimHandler")
	}
	return &ClaimHandler{Coordinator: co}
}

// ClaimSeats handles POST /v1/shows/:id/claim.  The body carries a JSON
// object with a "seats" array of labels.  On success it returns 200 with
// the full claimed set.  A conflict returns 409 naming the unavailable
// labels; the client re-fetches the seat map and retries.  Transient store
// failures also map to 409 but are flagged retryable without a re-fetch
// being strictly necessary.  Callers always receive a complete outcome:
// there is no partial success.
func (h *ClaimHandler) ClaimSeats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var body struct {
		Seats []string `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	outcome, err := h.Coordinator.Claim(c.Request().Context(), reservation.ClaimRequest{
		ShowID:     showID,
		SeatLabels: body.Seats,
		ClaimantID: userID,
	})
	if err != nil {
		var conflict *reservation.ConflictError
		switch {
		case errors.Is(err, reservation.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats must be a non-empty list without duplicates"})
		case errors.Is(err, reservation.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":       "one or more seats are no longer available",
				"unavailable": conflict.Unavailable,
			})
		case errors.Is(err, reservation.ErrTransient):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":     "claim could not be completed, try again",
				"retryable": true,
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "claim failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"claimed": outcome.Claimed})
}
