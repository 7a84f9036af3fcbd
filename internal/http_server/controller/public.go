// Package controller
package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/format"
	impl "github.com/codebrew-airways/skybridge/internal/http_server/service"
	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/codebrew-airways/skybridge/internal/model"
	"github.com/codebrew-airways/skybridge/internal/utils"
	"github.com/labstack/echo/v4"
)

type PublicControllerInterface interface {
	HomePage(ctx echo.Context) error
	FlightPage(ctx echo.Context) error
	AirportLookupPage(ctx echo.Context) error
	UserDashboardPage(ctx echo.Context) error
	AboutPage(ctx echo.Context) error
	ContactPage(ctx echo.Context) error
	ContactSubmit(ctx echo.Context) error
	GetAirports(ctx echo.Context) error
}

type PublicController struct {
	logger         log.LoggerInterface
	apiClient      *client.AviationClient
	sessionService SessionServiceInterface
	contactService ContactServiceInterface
	backend        *c.BackendConfig
}

func NewPublicController(
	logger log.LoggerInterface,
	apiClient *client.AviationClient,
	sessionService SessionServiceInterface,
	contactService ContactServiceInterface,
	backend *c.BackendConfig,
) *PublicController {
	return &PublicController{
		logger:         logger,
		apiClient:      apiClient,
		sessionService: sessionService,
		contactService: contactService,
		backend:        backend,
	}
}

func (controller *PublicController) page(ctx echo.Context, title, active string) Page {
	return Page{
		Title:   title,
		Active:  active,
		IsAdmin: controller.sessionService.HasSession(ctx),
	}
}

// Sample flights shown when the backend has nothing to offer, matching
// the original placeholder board.
var sampleBoardFlights = map[string][]model.BoardFlight{
	"departures": {
		{ID: 1, Airline: "WestJet", FlightNumber: "WS123", Date: "2025-12-12T14:30:00Z", To: "Toronto", Status: "On Time"},
		{ID: 2, Airline: "Air Canada", FlightNumber: "AC456", Date: "2025-12-12T16:15:00Z", To: "Vancouver", Status: "Delayed"},
		{ID: 3, Airline: "Porter Airlines", FlightNumber: "PD789", Date: "2025-12-12T18:45:00Z", To: "Montreal", Status: "Cancelled"},
	},
	"arrivals": {
		{ID: 4, Airline: "WestJet", FlightNumber: "WS321", Date: "2025-12-12T12:30:00Z", From: "Toronto", Status: "On Time"},
		{ID: 5, Airline: "Air Canada", FlightNumber: "AC654", Date: "2025-12-12T15:15:00Z", From: "Vancouver", Status: "Delayed"},
		{ID: 6, Airline: "Porter Airlines", FlightNumber: "PD987", Date: "2025-12-12T17:45:00Z", From: "Montreal", Status: "On Time"},
	},
}

type BoardRow struct {
	ID      int64
	Airline string
	Number  string
	Date    string
	Time    string
	Place   string
	Status  string
}

type HomeView struct {
	Page
	Type      string
	Query     string
	Today     string
	Direction string
	Rows      []BoardRow
	Error     bool
	Empty     bool
}

func (controller *PublicController) HomePage(ctx echo.Context) error {
	boardType := ctx.QueryParam("type")
	if boardType != "arrivals" {
		boardType = "departures"
	}
	query := impl.ClampSearch(strings.TrimSpace(ctx.QueryParam("q")))

	now := time.Now()
	result := client.FetchWithTimeout(ctx.Request().Context(), controller.backend.BoardDuration,
		func(fetchCtx context.Context) ([]model.BoardFlight, error) {
			return controller.apiClient.Board(fetchCtx, boardType, now, now.AddDate(1, 0, 0))
		})

	flights := result.Data
	boardError := false
	if !result.Ok() {
		controller.logger.WarnF("Board fetch failed (%v), falling back to sample flights", result.Err)
		flights = sampleBoardFlights[boardType]
		boardError = true
	} else if len(flights) == 0 {
		flights = sampleBoardFlights[boardType]
	}

	direction := "To"
	if boardType == "arrivals" {
		direction = "From"
	}

	rows := make([]BoardRow, 0, len(flights))
	for _, flight := range flights {
		place := flight.To
		if boardType == "arrivals" {
			place = flight.From
		}
		parts := format.FormatDateTime(flight.Date, "")
		row := BoardRow{
			ID:      flight.ID,
			Airline: flight.Airline,
			Number:  format.BoardFlightNumber(flight),
			Date:    parts.Date,
			Time:    parts.Time,
			Place:   place,
			Status:  flight.Status,
		}
		if query == "" || boardRowMatches(row, query) {
			rows = append(rows, row)
		}
	}

	return ctx.Render(http.StatusOK, "home", HomeView{
		Page:      controller.page(ctx, "Home", "home"),
		Type:      boardType,
		Query:     query,
		Today:     now.Format("Jan 2, 2006"),
		Direction: direction,
		Rows:      rows,
		Error:     boardError,
		Empty:     len(flights) == 0,
	})
}

func boardRowMatches(row BoardRow, query string) bool {
	term := strings.ToLower(query)
	for _, field := range []string{row.Airline, row.Number, row.Place, row.Status, row.Date, row.Time} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

type FlightView struct {
	Page
	Found           bool
	AirlineName     string
	Number          string
	DepCode         string
	DepName         string
	DepGate         string
	DepDateLong     string
	DepTimeWithZone string
	ArrCode         string
	ArrName         string
	ArrGate         string
	ArrDateLong     string
	ArrTimeWithZone string
	AircraftType    string
	Duration        string
	Status          string
}

func (controller *PublicController) FlightPage(ctx echo.Context) error {
	id := utils.StrToInt64(ctx.Param("id"), 0)
	view := FlightView{Page: controller.page(ctx, "Flight Details", "home")}
	if id <= 0 {
		return ctx.Render(http.StatusNotFound, "flight", view)
	}

	flight, err := controller.apiClient.FlightByID(ctx.Request().Context(), id)
	if err != nil {
		controller.logger.ErrorF("Fail to load flight %d: %v", id, err)
		return ctx.Render(http.StatusNotFound, "flight", view)
	}

	depTimezone, arrTimezone := "", ""
	view.DepCode, view.ArrCode = "?", "?"
	view.DepName, view.ArrName = "Unknown Airport", "Unknown Airport"
	if flight.DepartureAirport != nil {
		view.DepCode = flight.DepartureAirport.Code
		view.DepName = flight.DepartureAirport.Name
		depTimezone = flight.DepartureAirport.Timezone
	}
	if flight.ArrivalAirport != nil {
		view.ArrCode = flight.ArrivalAirport.Code
		view.ArrName = flight.ArrivalAirport.Name
		arrTimezone = flight.ArrivalAirport.Timezone
	}

	depParts := format.FormatFullDate(flight.DepartureTime, depTimezone)
	arrParts := format.FormatFullDate(flight.ArrivalTime, arrTimezone)

	view.Found = true
	view.AirlineName = "Unknown Airline"
	if flight.Airline != nil && flight.Airline.Name != "" {
		view.AirlineName = flight.Airline.Name
	}
	view.Number = format.FlightNumber(*flight)
	view.DepGate = flight.DepartureGateNumber()
	view.ArrGate = flight.ArrivalGateNumber()
	view.DepDateLong = depParts.DateLong
	view.DepTimeWithZone = depParts.TimeWithZone
	view.ArrDateLong = arrParts.DateLong
	view.ArrTimeWithZone = arrParts.TimeWithZone
	view.AircraftType = "Unknown"
	if flight.Aircraft != nil {
		view.AircraftType = flight.Aircraft.Type
	}
	view.Duration = format.ComputeDuration(flight.DepartureTime, flight.ArrivalTime)
	view.Status = flight.StatusOrDefault()

	return ctx.Render(http.StatusOK, "flight", view)
}

type AirportFlightRow struct {
	ID     int64
	Number string
	Other  string
	Gate   string
	Date   string
	Time   string
	Status string
}

type AirportLookupView struct {
	Page
	Code       string
	Airport    *model.Airport
	Departures []AirportFlightRow
	Arrivals   []AirportFlightRow
	NotFound   bool
}

// AirportLookupPage shows the departure and arrival boards for one
// airport, looked up by its code.
func (controller *PublicController) AirportLookupPage(ctx echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(ctx.QueryParam("code")))
	view := AirportLookupView{
		Page: controller.page(ctx, "Airports", "home"),
		Code: code,
	}
	if code == "" {
		return ctx.Render(http.StatusOK, "airports", view)
	}

	requestCtx := ctx.Request().Context()
	airport, err := controller.apiClient.AirportByCode(requestCtx, code)
	if err != nil {
		controller.logger.WarnF("Airport lookup for %s failed: %v", code, err)
		view.NotFound = true
		return ctx.Render(http.StatusOK, "airports", view)
	}
	view.Airport = airport

	if departures, err := controller.apiClient.Departures(requestCtx, code); err == nil {
		view.Departures = airportRows(departures, true)
	}
	if arrivals, err := controller.apiClient.Arrivals(requestCtx, code); err == nil {
		view.Arrivals = airportRows(arrivals, false)
	}

	return ctx.Render(http.StatusOK, "airports", view)
}

func airportRows(flights []model.Flight, departures bool) []AirportFlightRow {
	rows := make([]AirportFlightRow, 0, len(flights))
	for _, flight := range flights {
		other := flight.ArrivalCode()
		gate := flight.DepartureGateNumber()
		when := flight.DepartureTime
		timezone := ""
		if flight.DepartureAirport != nil {
			timezone = flight.DepartureAirport.Timezone
		}
		if !departures {
			other = flight.DepartureCode()
			gate = flight.ArrivalGateNumber()
			when = flight.ArrivalTime
			timezone = ""
			if flight.ArrivalAirport != nil {
				timezone = flight.ArrivalAirport.Timezone
			}
		}
		parts := format.FormatDateTime(when, timezone)
		rows = append(rows, AirportFlightRow{
			ID:     flight.ID,
			Number: format.FlightNumber(flight),
			Other:  other,
			Gate:   gate,
			Date:   parts.Date,
			Time:   parts.Time,
			Status: flight.StatusOrDefault(),
		})
	}
	return rows
}

type StaticView struct {
	Page
}

func (controller *PublicController) UserDashboardPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "user_dashboard", StaticView{controller.page(ctx, "Dashboard", "dashboard")})
}

func (controller *PublicController) AboutPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "about", StaticView{controller.page(ctx, "About Us", "about")})
}

type ContactView struct {
	Page
	Tab       string
	Submitted bool
	Error     string
	Name      string
	Email     string
	Message   string
}

func (controller *PublicController) ContactPage(ctx echo.Context) error {
	tab := ctx.QueryParam("tab")
	if tab != "feedback" {
		tab = "info"
	}
	return ctx.Render(http.StatusOK, "contact", ContactView{
		Page: controller.page(ctx, "Contact Us", "contact"),
		Tab:  tab,
	})
}

func (controller *PublicController) ContactSubmit(ctx echo.Context) error {
	data := &RequestContactMessage{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PublicController.ContactSubmit bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}

	response := controller.contactService.SendContactMessage(data)
	view := ContactView{
		Page:    controller.page(ctx, "Contact Us", "contact"),
		Tab:     "feedback",
		Name:    data.Name,
		Email:   data.Email,
		Message: data.Message,
	}
	if response.Data != nil && response.Data.Accepted {
		view.Submitted = true
	} else {
		view.Error = response.Message
	}
	return ctx.Render(http.StatusOK, "contact", view)
}

var GetAirportsSuccess = ApiStatus{StatusName: "GET_AIRPORTS_SUCCESS", Description: "Airports fetched", HttpCode: Ok}

// GetAirports exposes the airport list as JSON for client-side pickers.
func (controller *PublicController) GetAirports(ctx echo.Context) error {
	airports, err := controller.apiClient.PublicAirports(ctx.Request().Context())
	if err != nil {
		controller.logger.ErrorF("Fail to fetch airports: %v", err)
		return NewErrorResponse(ctx, &ErrBackendUnavailable)
	}

	query := impl.ClampSearch(strings.ToLower(strings.TrimSpace(ctx.QueryParam("q"))))
	if query != "" {
		filtered := airports[:0]
		for _, airport := range airports {
			if strings.Contains(strings.ToLower(airport.Name), query) ||
				strings.Contains(strings.ToLower(airport.Code), query) {
				filtered = append(filtered, airport)
			}
		}
		airports = filtered
	}

	return NewApiResponse(&GetAirportsSuccess, Unsatisfied, &airports).Response(ctx)
}
