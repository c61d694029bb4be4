package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/utils"
	"team-scheduler-api/modules/availability/dto"
	"team-scheduler-api/modules/availability/entity"
)

type stubAvailabilityService struct {
	resp *dto.FindAvailabilityResponse
	err  error
}

func (s *stubAvailabilityService) FindAvailability(_ context.Context, _ string, _ *dto.FindAvailabilityRequest) (*dto.FindAvailabilityResponse, error) {
	return s.resp, s.err
}

func doRequest(t *testing.T, svc *stubAvailabilityService, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/private/availability",
		strings.NewReader(`{"emails":["a@example.com"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if authenticated {
		c.Set(constants.ContextTokenData, &utils.TokenClaims{UserID: uuid.New(), Email: "me@example.com"})
	}

	ctrl := NewAvailabilityController(svc)
	if err := ctrl.FindAvailability(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestFindAvailabilityRequiresAuthentication(t *testing.T) {
	rec := doRequest(t, &stubAvailabilityService{}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestFindAvailabilityMissingParticipantsReturns403(t *testing.T) {
	svc := &stubAvailabilityService{
		err: errors.NewAppErrorWithDetails(errors.ErrIncompleteParticipants,
			"some participants have not connected their calendars",
			map[string]interface{}{"missingParticipants": []string{"a@example.com"}}, nil),
	}

	rec := doRequest(t, svc, true)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var body struct {
		Code    string `json:"code"`
		Details struct {
			MissingParticipants []string `json:"missingParticipants"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != string(errors.ErrIncompleteParticipants) {
		t.Errorf("code = %q", body.Code)
	}
	if len(body.Details.MissingParticipants) != 1 || body.Details.MissingParticipants[0] != "a@example.com" {
		t.Errorf("details = %+v, want the missing email surfaced to the caller", body.Details)
	}
}

func TestFindAvailabilityProviderFailureReturns502(t *testing.T) {
	svc := &stubAvailabilityService{
		err: errors.NewAppError(errors.ErrProviderUnavailable, "calendar provider returned status 500", nil),
	}

	rec := doRequest(t, svc, true)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestFindAvailabilitySuccess(t *testing.T) {
	svc := &stubAvailabilityService{
		resp: &dto.FindAvailabilityResponse{
			Slots:              []entity.TimeSlot{},
			Participants:       []string{"me@example.com", "a@example.com"},
			DurationMinutes:    30,
			DaysChecked:        7,
			SuggestedTeammates: []string{},
		},
	}

	rec := doRequest(t, svc, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"slots", "participants", "duration", "daysChecked", "suggestedTeammates"} {
		if _, ok := body.Data[key]; !ok {
			t.Errorf("response body missing %q", key)
		}
	}

	var daysChecked int
	if err := json.Unmarshal(body.Data["daysChecked"], &daysChecked); err != nil {
		t.Fatal(err)
	}
	if daysChecked != 7 {
		t.Errorf("daysChecked = %d, want 7", daysChecked)
	}
}
