package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/format"
	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/codebrew-airways/skybridge/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactService struct {
	response *ApiResponse[ResponseContactMessage]
	last     *RequestContactMessage
}

func (f *fakeContactService) SendContactMessage(req *RequestContactMessage) *ApiResponse[ResponseContactMessage] {
	f.last = req
	return f.response
}

type publicFixture struct {
	e          *echo.Echo
	renderer   *stubRenderer
	contact    *fakeContactService
	controller *PublicController
}

func newPublicFixture(backendURL string) *publicFixture {
	e := echo.New()
	renderer := &stubRenderer{}
	e.Renderer = renderer

	backend := &c.BackendConfig{
		AdminApiUrl:     backendURL,
		PublicApiUrl:    backendURL,
		RequestDuration: 2 * time.Second,
		BoardDuration:   2 * time.Second,
	}
	contact := &fakeContactService{
		response: NewApiResponse(&contactAccepted, Unsatisfied, &ResponseContactMessage{Accepted: true}),
	}
	return &publicFixture{
		e:        e,
		renderer: renderer,
		contact:  contact,
		controller: NewPublicController(
			nopLogger{},
			client.NewAviationClient(backend),
			&fakeSessionService{},
			contact,
			backend,
		),
	}
}

// contactAccepted mirrors the status the real contact service uses on
// the happy path.
var contactAccepted = ApiStatus{StatusName: "SEND_CONTACT_SUCCESS", Description: "Your message has been successfully submitted.", HttpCode: Ok}

func jsonBackend(t *testing.T, routes map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func TestHomePageRendersBoard(t *testing.T) {
	boardFlight := model.BoardFlight{ID: 11, Airline: "WestJet", FlightNumber: "WS8112", Date: "2026-03-01T14:30:00Z", To: "Toronto", Status: "On Time"}
	backend := jsonBackend(t, map[string]interface{}{
		"/api/flights": []model.BoardFlight{boardFlight},
	})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fixture.controller.HomePage(fixture.e.NewContext(req, rec)))

	require.Equal(t, "home", fixture.renderer.name)
	view, ok := fixture.renderer.data.(HomeView)
	require.True(t, ok)
	assert.Equal(t, "departures", view.Type)
	assert.False(t, view.Error)
	require.Len(t, view.Rows, 1)
	// The board shows the synthesized label, not the backend's raw
	// flight number.
	assert.Equal(t, format.BoardFlightNumber(boardFlight), view.Rows[0].Number)
	assert.Equal(t, "Toronto", view.Rows[0].Place)
}

func TestHomePageFallsBackToSamples(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/?type=arrivals", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fixture.controller.HomePage(fixture.e.NewContext(req, rec)))

	view, ok := fixture.renderer.data.(HomeView)
	require.True(t, ok)
	assert.True(t, view.Error)
	assert.Equal(t, "arrivals", view.Type)
	assert.Equal(t, "From", view.Direction)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, format.BoardFlightNumber(sampleBoardFlights["arrivals"][0]), view.Rows[0].Number)
}

func TestHomePageFilter(t *testing.T) {
	backend := jsonBackend(t, map[string]interface{}{
		"/api/flights": []model.BoardFlight{
			{ID: 1, Airline: "WestJet", FlightNumber: "WS1", Date: "2026-03-01T14:30:00Z", To: "Toronto", Status: "On Time"},
			{ID: 2, Airline: "Air Canada", FlightNumber: "AC2", Date: "2026-03-01T15:30:00Z", To: "Halifax", Status: "Delayed"},
		},
	})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/?q=halifax", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fixture.controller.HomePage(fixture.e.NewContext(req, rec)))

	view := fixture.renderer.data.(HomeView)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Halifax", view.Rows[0].Place)
}

func TestFlightPageNotFound(t *testing.T) {
	backend := jsonBackend(t, map[string]interface{}{})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/flight/99", nil)
	rec := httptest.NewRecorder()
	ctx := fixture.e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("99")
	require.NoError(t, fixture.controller.FlightPage(ctx))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	view := fixture.renderer.data.(FlightView)
	assert.False(t, view.Found)
}

func TestFlightPageDetails(t *testing.T) {
	backend := jsonBackend(t, map[string]interface{}{
		"/flights/5": model.Flight{
			ID:            5,
			Status:        "",
			DepartureTime: "2026-03-01T10:00:00Z",
			ArrivalTime:   "2026-03-01T12:30:00Z",
			Airline:       &model.Airline{ID: 1, Name: "WestJet", Code: "WS"},
			DepartureAirport: &model.Airport{
				ID: 1, Name: "Gander International", Code: "YQX", Timezone: "America/St_Johns",
			},
			ArrivalAirport: &model.Airport{
				ID: 2, Name: "Toronto Pearson", Code: "YYZ", Timezone: "America/Toronto",
			},
		},
	})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/flight/5", nil)
	rec := httptest.NewRecorder()
	ctx := fixture.e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("5")
	require.NoError(t, fixture.controller.FlightPage(ctx))

	view := fixture.renderer.data.(FlightView)
	assert.True(t, view.Found)
	assert.Equal(t, "WestJet", view.AirlineName)
	assert.Equal(t, "YQX", view.DepCode)
	assert.Equal(t, "YYZ", view.ArrCode)
	assert.Equal(t, "Scheduled", view.Status)
	assert.Equal(t, "2h 30m", view.Duration)
}

func TestAirportLookupUnknownCode(t *testing.T) {
	backend := jsonBackend(t, map[string]interface{}{})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/airports?code=zzz", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fixture.controller.AirportLookupPage(fixture.e.NewContext(req, rec)))

	view := fixture.renderer.data.(AirportLookupView)
	assert.True(t, view.NotFound)
	assert.Equal(t, "ZZZ", view.Code)
}

func TestGetAirportsFiltersByQuery(t *testing.T) {
	backend := jsonBackend(t, map[string]interface{}{
		"/api/airports": []model.Airport{
			{ID: 1, Name: "Gander International", Code: "YQX"},
			{ID: 2, Name: "Toronto Pearson", Code: "YYZ"},
		},
	})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/airports?q=gander", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fixture.controller.GetAirports(fixture.e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Code string          `json:"code"`
		Data []model.Airport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "GET_AIRPORTS_SUCCESS", response.Code)
	require.Len(t, response.Data, 1)
	assert.Equal(t, "YQX", response.Data[0].Code)
}

func TestContactSubmit(t *testing.T) {
	backend := jsonBackend(t, map[string]interface{}{})
	defer backend.Close()
	fixture := newPublicFixture(backend.URL)

	form := "name=Ada&email=ada%40example.com&message=hello"
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	require.NoError(t, fixture.controller.ContactSubmit(fixture.e.NewContext(req, rec)))

	require.NotNil(t, fixture.contact.last)
	assert.Equal(t, "Ada", fixture.contact.last.Name)
	view := fixture.renderer.data.(ContactView)
	assert.True(t, view.Submitted)
	assert.Equal(t, "feedback", view.Tab)
}
