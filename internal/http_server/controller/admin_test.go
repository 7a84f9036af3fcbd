package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/codebrew-airways/skybridge/internal/listview"
	"github.com/codebrew-airways/skybridge/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Init(bool)                         {}
func (nopLogger) ShutdownCallback() global.Callable { return nil }
func (nopLogger) Debug(string, ...interface{})      {}
func (nopLogger) DebugF(string, ...interface{})     {}
func (nopLogger) Info(string, ...interface{})       {}
func (nopLogger) InfoF(string, ...interface{})      {}
func (nopLogger) Warn(string, ...interface{})       {}
func (nopLogger) WarnF(string, ...interface{})      {}
func (nopLogger) Error(string, ...interface{})      {}
func (nopLogger) ErrorF(string, ...interface{})     {}
func (nopLogger) Fatal(string, ...interface{})      {}
func (nopLogger) FatalF(string, ...interface{})     {}

// stubSource serves canned entities and records mutations.
type stubSource[T any] struct {
	items         []T
	err           error
	createCalls   int
	deleteCalls   int
	lastPayload   interface{}
	lastRelations client.Relations
}

func (s *stubSource[T]) List(context.Context) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]T(nil), s.items...), nil
}

func (s *stubSource[T]) Create(_ context.Context, payload interface{}, relations client.Relations) error {
	s.createCalls++
	s.lastPayload = payload
	s.lastRelations = relations
	return s.err
}

func (s *stubSource[T]) Update(context.Context, int64, interface{}, client.Relations) error {
	return s.err
}

func (s *stubSource[T]) Delete(context.Context, int64) error {
	s.deleteCalls++
	return s.err
}

type stubSources struct {
	cities     *stubSource[model.City]
	airports   *stubSource[model.Airport]
	gates      *stubSource[model.Gate]
	airlines   *stubSource[model.Airline]
	aircraft   *stubSource[model.Aircraft]
	flights    *stubSource[model.Flight]
	passengers *stubSource[model.Passenger]
}

func newStubSources() *stubSources {
	return &stubSources{
		cities:     &stubSource[model.City]{},
		airports:   &stubSource[model.Airport]{},
		gates:      &stubSource[model.Gate]{},
		airlines:   &stubSource[model.Airline]{},
		aircraft:   &stubSource[model.Aircraft]{},
		flights:    &stubSource[model.Flight]{},
		passengers: &stubSource[model.Passenger]{},
	}
}

func (s *stubSources) controllers() *EntityControllers {
	logger := nopLogger{}
	ttl := 8 * time.Second
	return &EntityControllers{
		Cities: listview.NewController(listview.Config[model.City]{
			EntityName: "city", PluralName: "cities",
			ID:           func(c model.City) int64 { return c.ID },
			SearchFields: model.City.SearchFields,
			SuccessTTL:   ttl,
		}, s.cities, logger),
		Airports: listview.NewController(listview.Config[model.Airport]{
			EntityName:   "airport",
			ID:           func(a model.Airport) int64 { return a.ID },
			SearchFields: model.Airport.SearchFields,
			SuccessTTL:   ttl,
		}, s.airports, logger),
		Gates: listview.NewController(listview.Config[model.Gate]{
			EntityName:   "gate",
			ID:           func(g model.Gate) int64 { return g.ID },
			SearchFields: model.Gate.SearchFields,
			SuccessTTL:   ttl,
		}, s.gates, logger),
		Airlines: listview.NewController(listview.Config[model.Airline]{
			EntityName:   "airline",
			ID:           func(a model.Airline) int64 { return a.ID },
			SearchFields: model.Airline.SearchFields,
			SuccessTTL:   ttl,
		}, s.airlines, logger),
		Aircraft: listview.NewController(listview.Config[model.Aircraft]{
			EntityName: "aircraft", PluralName: "aircraft",
			ID:           func(a model.Aircraft) int64 { return a.ID },
			SearchFields: model.Aircraft.SearchFields,
			SuccessTTL:   ttl,
		}, s.aircraft, logger),
		Flights: listview.NewController(listview.Config[model.Flight]{
			EntityName:   "flight",
			ID:           func(f model.Flight) int64 { return f.ID },
			SearchFields: model.Flight.SearchFields,
			DeleteGuard: func(f model.Flight) error {
				if len(f.Passengers) > 0 {
					return &client.ValidationError{Message: "Cannot delete flight: passengers are attached"}
				}
				return nil
			},
			SuccessTTL: ttl,
		}, s.flights, logger),
		Passengers: listview.NewController(listview.Config[model.Passenger]{
			EntityName:   "passenger",
			ID:           func(p model.Passenger) int64 { return p.ID },
			SearchFields: model.Passenger.SearchFields,
			SuccessTTL:   ttl,
		}, s.passengers, logger),
	}
}

type fakeSessionService struct {
	authErr   error
	sessionID string
	issued    string
}

func (f *fakeSessionService) Authenticate(string) error { return f.authErr }

func (f *fakeSessionService) IssueSession() (string, *http.Cookie) {
	f.issued = "sess-1"
	return "sess-1", &http.Cookie{Name: "skybridge_session", Value: "token"}
}

func (f *fakeSessionService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{Name: "skybridge_session", MaxAge: -1}
}

func (f *fakeSessionService) SessionID(echo.Context) (string, bool) {
	return f.sessionID, f.sessionID != ""
}

func (f *fakeSessionService) HasSession(echo.Context) bool { return f.sessionID != "" }

type fakeDashboardService struct {
	controllers *EntityControllers
	dropped     []string
}

func (f *fakeDashboardService) Controllers(string) *EntityControllers { return f.controllers }

func (f *fakeDashboardService) DropSession(sessionID string) {
	f.dropped = append(f.dropped, sessionID)
}

// stubRenderer records what the handler asked to render.
type stubRenderer struct {
	name string
	data interface{}
}

func (r *stubRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.data = data
	_, err := io.WriteString(w, name)
	return err
}

type adminFixture struct {
	e          *echo.Echo
	renderer   *stubRenderer
	sessions   *fakeSessionService
	dashboards *fakeDashboardService
	sources    *stubSources
	controller *AdminController
}

func newAdminFixture() *adminFixture {
	e := echo.New()
	renderer := &stubRenderer{}
	e.Renderer = renderer
	sources := newStubSources()
	sessions := &fakeSessionService{sessionID: "sess-1"}
	dashboards := &fakeDashboardService{controllers: sources.controllers()}
	return &adminFixture{
		e:          e,
		renderer:   renderer,
		sessions:   sessions,
		dashboards: dashboards,
		sources:    sources,
		controller: NewAdminController(nopLogger{}, sessions, dashboards),
	}
}

func (f *adminFixture) get(target, tab string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ctx := f.e.NewContext(req, rec)
	if tab != "" {
		ctx.SetParamNames("tab")
		ctx.SetParamValues(tab)
	}
	return ctx, rec
}

func (f *adminFixture) postForm(target, tab string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	ctx := f.e.NewContext(req, rec)
	if tab != "" {
		ctx.SetParamNames("tab")
		ctx.SetParamValues(tab)
	}
	return ctx, rec
}

func TestLoginWrongPassword(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sessions.sessionID = ""
	fixture.sessions.authErr = assert.AnError

	ctx, rec := fixture.postForm("/admin/login", "", url.Values{"password": {"nope"}})
	require.NoError(t, fixture.controller.Login(ctx))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "login", fixture.renderer.name)
	view, ok := fixture.renderer.data.(LoginView)
	require.True(t, ok)
	assert.Equal(t, "Wrong password!", view.Error)
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sessions.sessionID = ""

	ctx, rec := fixture.postForm("/admin/login", "", url.Values{"password": {"right"}})
	require.NoError(t, fixture.controller.Login(ctx))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard/airports", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "skybridge_session=token")
}

func TestLogoutDropsSession(t *testing.T) {
	fixture := newAdminFixture()

	ctx, rec := fixture.postForm("/admin/logout", "", url.Values{})
	require.NoError(t, fixture.controller.Logout(ctx))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"sess-1"}, fixture.dashboards.dropped)
}

func TestDashboardCitiesTab(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sources.cities.items = []model.City{
		{ID: 1, Name: "Gander", Province: "NL"},
		{ID: 2, Name: "Halifax", Province: "NS"},
	}

	ctx, rec := fixture.get("/admin/dashboard/cities?q=hal", "cities")
	require.NoError(t, fixture.controller.Dashboard(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin_cities", fixture.renderer.name)
	view, ok := fixture.renderer.data.(CitiesTabView)
	require.True(t, ok)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Halifax", view.Items[0].Name)
	assert.Equal(t, "hal", view.Query)
	assert.True(t, view.IsAdmin)
}

func TestDashboardUnknownTabRedirects(t *testing.T) {
	fixture := newAdminFixture()

	ctx, rec := fixture.get("/admin/dashboard/bogus", "bogus")
	require.NoError(t, fixture.controller.Dashboard(ctx))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard/airports", rec.Header().Get(echo.HeaderLocation))
}

func TestSubmitCreatesCity(t *testing.T) {
	fixture := newAdminFixture()

	form := url.Values{"name": {"Gander"}, "province": {"NL"}, "population": {"11688"}}
	ctx, rec := fixture.postForm("/admin/dashboard/cities", "cities", form)
	require.NoError(t, fixture.controller.Submit(ctx))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard/cities", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, fixture.sources.cities.createCalls)
}

func TestSubmitValidationFailureRaisesBanner(t *testing.T) {
	fixture := newAdminFixture()

	// Airport form without a city never reaches the backend.
	form := url.Values{"name": {"Gander Intl"}, "code": {"yqx"}}
	ctx, _ := fixture.postForm("/admin/dashboard/airports", "airports", form)
	require.NoError(t, fixture.controller.Submit(ctx))

	assert.Equal(t, 0, fixture.sources.airports.createCalls)
	status := fixture.dashboards.controllers.Airports.Status()
	require.NotNil(t, status)
	assert.Equal(t, "Please select a city for the airport", status.Text)
	assert.Equal(t, listview.MessageError, status.Kind)
}

func TestDeleteFlightWithPassengersIsBlocked(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sources.flights.items = []model.Flight{
		{ID: 7, Passengers: []model.Passenger{{ID: 1}}},
	}

	ctx, rec := fixture.postForm("/admin/dashboard/flights/7/delete", "flights", url.Values{})
	ctx.SetParamNames("tab", "id")
	ctx.SetParamValues("flights", "7")
	require.NoError(t, fixture.controller.Delete(ctx))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, fixture.sources.flights.deleteCalls)
	status := fixture.dashboards.controllers.Flights.Status()
	require.NotNil(t, status)
	assert.Equal(t, "Cannot delete flight: passengers are attached", status.Text)
}

func TestFlightsTabOffersDependentsForSelectedParents(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sources.gates.items = []model.Gate{
		{ID: 5, GateNumber: "A1", Airport: &model.Airport{ID: 1}},
		{ID: 6, GateNumber: "B2", Airport: &model.Airport{ID: 2}},
	}
	fixture.sources.aircraft.items = []model.Aircraft{
		{ID: 30, Type: "Dash 8", Airline: &model.Airline{ID: 9}},
		{ID: 31, Type: "A320", Airline: &model.Airline{ID: 10}},
	}

	// No pending edit: the parent choices arrive via the query string.
	ctx, _ := fixture.get("/admin/dashboard/flights?departureAirportId=1&airlineId=9", "flights")
	require.NoError(t, fixture.controller.Dashboard(ctx))

	view, ok := fixture.renderer.data.(FlightsTabView)
	require.True(t, ok)
	assert.Equal(t, "1", view.Form.DepartureAirportID)
	require.Len(t, view.DepartureGates, 1)
	assert.Equal(t, int64(5), view.DepartureGates[0].ID)
	assert.Empty(t, view.ArrivalGates)
	require.Len(t, view.AirlineAircraft, 1)
	assert.Equal(t, int64(30), view.AirlineAircraft[0].ID)
}

func TestFlightsTabParentChangeClearsStaleGate(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sources.gates.items = []model.Gate{
		{ID: 5, GateNumber: "A1", Airport: &model.Airport{ID: 1}},
		{ID: 6, GateNumber: "B2", Airport: &model.Airport{ID: 2}},
	}
	fixture.sources.flights.items = []model.Flight{{
		ID:               7,
		DepartureAirport: &model.Airport{ID: 2},
		DepartureGate:    &model.Gate{ID: 6, Airport: &model.Airport{ID: 2}},
		ArrivalAirport:   &model.Airport{ID: 1},
	}}

	ctx, _ := fixture.get("/admin/dashboard/flights/7/edit", "")
	ctx.SetParamNames("tab", "id")
	ctx.SetParamValues("flights", "7")
	require.NoError(t, fixture.controller.Edit(ctx))

	// Switching the departure airport mid-edit drops the old gate.
	ctx, _ = fixture.get("/admin/dashboard/flights?departureAirportId=1", "flights")
	require.NoError(t, fixture.controller.Dashboard(ctx))

	view := fixture.renderer.data.(FlightsTabView)
	assert.Equal(t, "1", view.Form.DepartureAirportID)
	assert.Empty(t, view.Form.DepartureGateID)
	require.Len(t, view.DepartureGates, 1)
	assert.Equal(t, int64(5), view.DepartureGates[0].ID)
}

func TestEditPrefillsForm(t *testing.T) {
	fixture := newAdminFixture()
	fixture.sources.cities.items = []model.City{{ID: 3, Name: "Gander", Province: "NL", Population: 11688}}

	ctx, rec := fixture.get("/admin/dashboard/cities/3/edit", "")
	ctx.SetParamNames("tab", "id")
	ctx.SetParamValues("cities", "3")
	require.NoError(t, fixture.controller.Edit(ctx))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	ctx, _ = fixture.get("/admin/dashboard/cities", "cities")
	require.NoError(t, fixture.controller.Dashboard(ctx))

	view, ok := fixture.renderer.data.(CitiesTabView)
	require.True(t, ok)
	assert.True(t, view.Editing)
	assert.Equal(t, int64(3), view.EditingID)
	assert.Equal(t, "Gander", view.Form.Name)
	assert.Equal(t, "11688", view.Form.Population)
}
