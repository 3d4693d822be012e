package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cinetix/seat-reservation/internal/reservation"
)

// stubClaimer returns a canned outcome or error and records the request it
// was called with.
type stubClaimer struct {
	outcome reservation.ClaimOutcome
	err     error
	got     *reservation.ClaimRequest
}

func (s *stubClaimer) Claim(_ context.Context, req reservation.ClaimRequest) (reservation.ClaimOutcome, error) {
	s.got = &req
	return s.outcome, s.err
}

func doClaim(t *testing.T, stub *stubClaimer, showID, body string, userID any) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/shows/"+showID+"/claim", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/shows/:id/claim")
	c.SetParamNames("id")
	c.SetParamValues(showID)
	if userID != nil {
		c.Set("user_id", userID)
	}
	h := NewClaimHandler(stub)
	if err := h.ClaimSeats(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestClaimSeats_Success(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{outcome: reservation.ClaimOutcome{Claimed: []string{"A1", "A2"}}}
	rec := doClaim(t, stub, "7", `{"seats":["a1","A2"]}`, float64(42))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	claimed, _ := body["claimed"].([]any)
	if len(claimed) != 2 || claimed[0] != "A1" {
		t.Fatalf("unexpected claimed set: %v", body["claimed"])
	}
	if stub.got == nil || stub.got.ShowID != 7 || stub.got.ClaimantID != 42 {
		t.Fatalf("coordinator received wrong request: %+v", stub.got)
	}
}

func TestClaimSeats_Unauthorized(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{}
	rec := doClaim(t, stub, "7", `{"seats":["A1"]}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if stub.got != nil {
		t.Fatalf("coordinator must not be called without an identity")
	}
}

func TestClaimSeats_BadShowID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"abc", "0", "-3"} {
		rec := doClaim(t, &stubClaimer{}, id, `{"seats":["A1"]}`, float64(1))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("show id %q: expected 400, got %d", id, rec.Code)
		}
	}
}

func TestClaimSeats_InvalidRequest(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{err: reservation.ErrInvalidRequest}
	rec := doClaim(t, stub, "7", `{"seats":[]}`, float64(1))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClaimSeats_ShowNotFound(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{err: reservation.ErrNotFound}
	rec := doClaim(t, stub, "99", `{"seats":["A1"]}`, float64(1))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClaimSeats_Conflict(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{err: &reservation.ConflictError{Unavailable: []string{"A2", "B1"}}}
	rec := doClaim(t, stub, "7", `{"seats":["A1","A2","B1"]}`, float64(1))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	unavailable, _ := body["unavailable"].([]any)
	if len(unavailable) != 2 || unavailable[0] != "A2" || unavailable[1] != "B1" {
		t.Fatalf("expected unavailable [A2 B1], got %v", body["unavailable"])
	}
	if _, retryable := body["retryable"]; retryable {
		t.Fatalf("seat conflicts are not flagged retryable: %v", body)
	}
}

func TestClaimSeats_Transient(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{err: errors.Join(reservation.ErrTransient, errors.New("lock wait timeout"))}
	rec := doClaim(t, stub, "7", `{"seats":["A1"]}`, float64(1))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["retryable"] != true {
		t.Fatalf("expected retryable flag, got %v", body)
	}
}

func TestClaimSeats_UnknownError(t *testing.T) {
	t.Parallel()

	stub := &stubClaimer{err: errors.New("boom")}
	rec := doClaim(t, stub, "7", `{"seats":["A1"]}`, float64(1))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
