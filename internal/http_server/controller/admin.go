// Package controller
package controller

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/forms"
	impl "github.com/codebrew-airways/skybridge/internal/http_server/service"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/codebrew-airways/skybridge/internal/listview"
	"github.com/codebrew-airways/skybridge/internal/model"
	"github.com/codebrew-airways/skybridge/internal/utils"
	"github.com/labstack/echo/v4"
)

const validationMessageTTL = 8 * time.Second

type AdminControllerInterface interface {
	LoginPage(ctx echo.Context) error
	Login(ctx echo.Context) error
	Logout(ctx echo.Context) error
	Dashboard(ctx echo.Context) error
	Submit(ctx echo.Context) error
	Edit(ctx echo.Context) error
	CancelEdit(ctx echo.Context) error
	Delete(ctx echo.Context) error
}

type AdminController struct {
	logger           log.LoggerInterface
	sessionService   SessionServiceInterface
	dashboardService DashboardServiceInterface
}

func NewAdminController(
	logger log.LoggerInterface,
	sessionService SessionServiceInterface,
	dashboardService DashboardServiceInterface,
) *AdminController {
	return &AdminController{
		logger:           logger,
		sessionService:   sessionService,
		dashboardService: dashboardService,
	}
}

type LoginView struct {
	Page
	Error string
}

func (controller *AdminController) LoginPage(ctx echo.Context) error {
	if controller.sessionService.HasSession(ctx) {
		return ctx.Redirect(http.StatusSeeOther, "/admin/dashboard/airports")
	}
	return ctx.Render(http.StatusOK, "login", LoginView{
		Page: Page{Title: "Staff Access", Active: "admin"},
	})
}

func (controller *AdminController) Login(ctx echo.Context) error {
	password := ctx.FormValue("password")
	if err := controller.sessionService.Authenticate(password); err != nil {
		return ctx.Render(http.StatusUnauthorized, "login", LoginView{
			Page:  Page{Title: "Staff Access", Active: "admin"},
			Error: "Wrong password!",
		})
	}

	sessionID, cookie := controller.sessionService.IssueSession()
	ctx.SetCookie(cookie)
	controller.logger.InfoF("Admin session %s opened from %s", sessionID, ctx.RealIP())
	return ctx.Redirect(http.StatusSeeOther, "/admin/dashboard/airports")
}

func (controller *AdminController) Logout(ctx echo.Context) error {
	if sessionID, ok := controller.sessionService.SessionID(ctx); ok {
		controller.dashboardService.DropSession(sessionID)
		controller.logger.InfoF("Admin session %s closed", sessionID)
	}
	ctx.SetCookie(controller.sessionService.ExpiredCookie())
	return ctx.Redirect(http.StatusSeeOther, "/")
}

var dashboardTabs = map[string]bool{
	"airports":   true,
	"flights":    true,
	"airlines":   true,
	"aircraft":   true,
	"gates":      true,
	"cities":     true,
	"passengers": true,
}

// session resolves the per-session controllers, or fails the request
// back to the login page.
func (controller *AdminController) session(ctx echo.Context) (*EntityControllers, string, error) {
	sessionID, ok := controller.sessionService.SessionID(ctx)
	if !ok {
		return nil, "", ctx.Redirect(http.StatusSeeOther, "/admin")
	}
	return controller.dashboardService.Controllers(sessionID), sessionID, nil
}

func tabOf(ctx echo.Context) (string, bool) {
	tab := ctx.Param("tab")
	return tab, dashboardTabs[tab]
}

func tabPath(tab string) string {
	return "/admin/dashboard/" + tab
}

// TabView is the part of every dashboard page the shared blocks render.
type TabView struct {
	Page
	Tab       string
	Query     string
	Status    *listview.StatusMessage
	Editing   bool
	EditingID int64
}

func (controller *AdminController) tabView(ctx echo.Context, tab, title string) TabView {
	return TabView{
		Page:   Page{Title: title, Active: "dashboard", IsAdmin: true},
		Tab:    tab,
		Query:  impl.ClampSearch(ctx.QueryParam("q")),
		Status: nil,
	}
}

func fillTabState[T any](view *TabView, ctrl *listview.Controller[T]) {
	view.Status = ctrl.Status()
	view.EditingID, view.Editing = ctrl.EditingID()
}

// editingItem returns the loaded entity a pending edit refers to.
func editingItem[T any](ctrl *listview.Controller[T], id func(T) int64) (T, bool) {
	var zero T
	editingID, editing := ctrl.EditingID()
	if !editing {
		return zero, false
	}
	for _, item := range ctrl.All() {
		if id(item) == editingID {
			return item, true
		}
	}
	return zero, false
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionalID[T any](ref *T, id func(T) int64) string {
	if ref == nil {
		return ""
	}
	return formatID(id(*ref))
}

// sliceDateTimeLocal truncates an ISO timestamp to the precision of a
// datetime-local input.
func sliceDateTimeLocal(iso string) string {
	if len(iso) >= 16 {
		return iso[:16]
	}
	return iso
}

type cityForm struct{ Name, Province, Population string }

type airportForm struct{ Name, Code, CityID string }

type gateForm struct{ GateNumber, Status, AirportID string }

type airlineForm struct{ Name, Code, CityID string }

type aircraftForm struct{ Type, NumberOfPassengers, AirlineID string }

type flightForm struct {
	Status, DepartureTime, ArrivalTime                    string
	DepartureAirportID, ArrivalAirportID                  string
	DepartureGateID, ArrivalGateID, AirlineID, AircraftID string
}

type passengerForm struct{ FirstName, LastName, Phone, CityID, FlightID string }

type CitiesTabView struct {
	TabView
	Items []model.City
	Form  cityForm
}

type AirportsTabView struct {
	TabView
	Items  []model.Airport
	Cities []model.City
	Form   airportForm
}

type GatesTabView struct {
	TabView
	Items    []model.Gate
	Airports []model.Airport
	Form     gateForm
}

type AirlinesTabView struct {
	TabView
	Items  []model.Airline
	Cities []model.City
	Form   airlineForm
}

type AircraftTabView struct {
	TabView
	Items    []model.Aircraft
	Airlines []model.Airline
	Form     aircraftForm
}

type FlightsTabView struct {
	TabView
	Items           []model.Flight
	Airports        []model.Airport
	Airlines        []model.Airline
	DepartureGates  []model.Gate
	ArrivalGates    []model.Gate
	AirlineAircraft []model.Aircraft
	Form            flightForm
}

type PassengersTabView struct {
	TabView
	Items   []model.Passenger
	Cities  []model.City
	Flights []model.Flight
	Form    passengerForm
}

func (controller *AdminController) Dashboard(ctx echo.Context) error {
	tab, ok := tabOf(ctx)
	if !ok {
		return ctx.Redirect(http.StatusSeeOther, tabPath("airports"))
	}
	ec, _, err := controller.session(ctx)
	if ec == nil {
		return err
	}

	requestCtx := ctx.Request().Context()
	switch tab {
	case "cities":
		return controller.citiesTab(ctx, requestCtx, ec)
	case "airports":
		return controller.airportsTab(ctx, requestCtx, ec)
	case "gates":
		return controller.gatesTab(ctx, requestCtx, ec)
	case "airlines":
		return controller.airlinesTab(ctx, requestCtx, ec)
	case "aircraft":
		return controller.aircraftTab(ctx, requestCtx, ec)
	case "flights":
		return controller.flightsTab(ctx, requestCtx, ec)
	default:
		return controller.passengersTab(ctx, requestCtx, ec)
	}
}

func (controller *AdminController) citiesTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := CitiesTabView{TabView: controller.tabView(ctx, "cities", "Cities")}
	_ = ec.Cities.Load(requestCtx)
	ec.Cities.SetQuery(view.Query)
	view.Items = ec.Cities.Items()
	if city, ok := editingItem(ec.Cities, func(c model.City) int64 { return c.ID }); ok {
		view.Form = cityForm{
			Name:       city.Name,
			Province:   city.Province,
			Population: formatID(city.Population),
		}
	}
	fillTabState(&view.TabView, ec.Cities)
	return ctx.Render(http.StatusOK, "admin_cities", view)
}

func (controller *AdminController) airportsTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := AirportsTabView{TabView: controller.tabView(ctx, "airports", "Airports")}
	_ = ec.Airports.Load(requestCtx)
	_ = ec.Cities.Load(requestCtx)
	ec.Airports.SetQuery(view.Query)
	view.Items = ec.Airports.Items()
	view.Cities = ec.Cities.All()
	if airport, ok := editingItem(ec.Airports, func(a model.Airport) int64 { return a.ID }); ok {
		view.Form = airportForm{
			Name:   airport.Name,
			Code:   airport.Code,
			CityID: optionalID(airport.City, func(c model.City) int64 { return c.ID }),
		}
	}
	fillTabState(&view.TabView, ec.Airports)
	return ctx.Render(http.StatusOK, "admin_airports", view)
}

func (controller *AdminController) gatesTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := GatesTabView{TabView: controller.tabView(ctx, "gates", "Gates")}
	_ = ec.Gates.Load(requestCtx)
	_ = ec.Airports.Load(requestCtx)
	ec.Gates.SetQuery(view.Query)
	view.Items = ec.Gates.Items()
	view.Airports = ec.Airports.All()
	if gate, ok := editingItem(ec.Gates, func(g model.Gate) int64 { return g.ID }); ok {
		view.Form = gateForm{
			GateNumber: gate.GateNumber,
			Status:     gate.Status,
			AirportID:  optionalID(gate.Airport, func(a model.Airport) int64 { return a.ID }),
		}
	}
	fillTabState(&view.TabView, ec.Gates)
	return ctx.Render(http.StatusOK, "admin_gates", view)
}

func (controller *AdminController) airlinesTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := AirlinesTabView{TabView: controller.tabView(ctx, "airlines", "Airlines")}
	_ = ec.Airlines.Load(requestCtx)
	_ = ec.Cities.Load(requestCtx)
	ec.Airlines.SetQuery(view.Query)
	view.Items = ec.Airlines.Items()
	view.Cities = ec.Cities.All()
	if airline, ok := editingItem(ec.Airlines, func(a model.Airline) int64 { return a.ID }); ok {
		view.Form = airlineForm{
			Name:   airline.Name,
			Code:   airline.Code,
			CityID: optionalID(airline.City, func(c model.City) int64 { return c.ID }),
		}
	}
	fillTabState(&view.TabView, ec.Airlines)
	return ctx.Render(http.StatusOK, "admin_airlines", view)
}

func (controller *AdminController) aircraftTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := AircraftTabView{TabView: controller.tabView(ctx, "aircraft", "Aircraft")}
	_ = ec.Aircraft.Load(requestCtx)
	_ = ec.Airlines.Load(requestCtx)
	ec.Aircraft.SetQuery(view.Query)
	view.Items = ec.Aircraft.Items()
	view.Airlines = ec.Airlines.All()
	if aircraft, ok := editingItem(ec.Aircraft, func(a model.Aircraft) int64 { return a.ID }); ok {
		view.Form = aircraftForm{
			Type:               aircraft.Type,
			NumberOfPassengers: strconv.Itoa(aircraft.NumberOfPassengers),
			AirlineID:          optionalID(aircraft.Airline, func(a model.Airline) int64 { return a.ID }),
		}
	}
	fillTabState(&view.TabView, ec.Aircraft)
	return ctx.Render(http.StatusOK, "admin_aircraft", view)
}

func (controller *AdminController) flightsTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := FlightsTabView{TabView: controller.tabView(ctx, "flights", "Flights")}
	_ = ec.Flights.Load(requestCtx)
	_ = ec.Airports.Load(requestCtx)
	_ = ec.Gates.Load(requestCtx)
	_ = ec.Airlines.Load(requestCtx)
	_ = ec.Aircraft.Load(requestCtx)
	ec.Flights.SetQuery(view.Query)
	view.Items = ec.Flights.Items()
	view.Airports = ec.Airports.All()
	view.Airlines = ec.Airlines.All()

	if flight, ok := editingItem(ec.Flights, func(f model.Flight) int64 { return f.ID }); ok {
		view.Form = flightForm{
			Status:             flight.Status,
			DepartureTime:      sliceDateTimeLocal(flight.DepartureTime),
			ArrivalTime:        sliceDateTimeLocal(flight.ArrivalTime),
			DepartureAirportID: optionalID(flight.DepartureAirport, func(a model.Airport) int64 { return a.ID }),
			ArrivalAirportID:   optionalID(flight.ArrivalAirport, func(a model.Airport) int64 { return a.ID }),
			DepartureGateID:    optionalID(flight.DepartureGate, func(g model.Gate) int64 { return g.ID }),
			ArrivalGateID:      optionalID(flight.ArrivalGate, func(g model.Gate) int64 { return g.ID }),
			AirlineID:          optionalID(flight.Airline, func(a model.Airline) int64 { return a.ID }),
			AircraftID:         optionalID(flight.Aircraft, func(a model.Aircraft) int64 { return a.ID }),
		}
	}

	// Parent selects reload the tab with their choice in the query
	// string, so dependents are selectable on create too, not only when
	// editing prefilled the form.
	applyParentSelection(ctx, &view.Form)

	// Dependent selects only offer gates of the chosen airports and
	// aircraft of the chosen airline.
	view.DepartureGates = gatesOfAirport(ec.Gates.All(), view.Form.DepartureAirportID)
	view.ArrivalGates = gatesOfAirport(ec.Gates.All(), view.Form.ArrivalAirportID)
	view.AirlineAircraft = aircraftOfAirline(ec.Aircraft.All(), view.Form.AirlineID)

	fillTabState(&view.TabView, ec.Flights)
	return ctx.Render(http.StatusOK, "admin_flights", view)
}

// applyParentSelection overrides the parent selects from the query
// string and clears a dependent whose parent changed.
func applyParentSelection(ctx echo.Context, form *flightForm) {
	if v := strings.TrimSpace(ctx.QueryParam("departureAirportId")); v != "" {
		if v != form.DepartureAirportID {
			form.DepartureGateID = ""
		}
		form.DepartureAirportID = v
	}
	if v := strings.TrimSpace(ctx.QueryParam("arrivalAirportId")); v != "" {
		if v != form.ArrivalAirportID {
			form.ArrivalGateID = ""
		}
		form.ArrivalAirportID = v
	}
	if v := strings.TrimSpace(ctx.QueryParam("airlineId")); v != "" {
		if v != form.AirlineID {
			form.AircraftID = ""
		}
		form.AirlineID = v
	}
}

func gatesOfAirport(gates []model.Gate, airportID string) []model.Gate {
	if airportID == "" {
		return nil
	}
	id := utils.StrToInt64(airportID, 0)
	return utils.Filter(gates, func(g model.Gate) bool {
		return g.Airport != nil && g.Airport.ID == id
	})
}

func aircraftOfAirline(aircraft []model.Aircraft, airlineID string) []model.Aircraft {
	if airlineID == "" {
		return nil
	}
	id := utils.StrToInt64(airlineID, 0)
	return utils.Filter(aircraft, func(a model.Aircraft) bool {
		return a.Airline != nil && a.Airline.ID == id
	})
}

func (controller *AdminController) passengersTab(ctx echo.Context, requestCtx context.Context, ec *EntityControllers) error {
	view := PassengersTabView{TabView: controller.tabView(ctx, "passengers", "Passengers")}
	_ = ec.Passengers.Load(requestCtx)
	_ = ec.Cities.Load(requestCtx)
	_ = ec.Flights.Load(requestCtx)
	ec.Passengers.SetQuery(view.Query)
	view.Items = ec.Passengers.Items()
	view.Cities = ec.Cities.All()
	view.Flights = ec.Flights.All()
	if passenger, ok := editingItem(ec.Passengers, func(p model.Passenger) int64 { return p.ID }); ok {
		view.Form = passengerForm{
			FirstName: passenger.FirstName,
			LastName:  passenger.LastName,
			Phone:     passenger.Phone,
			CityID:    optionalID(passenger.City, func(c model.City) int64 { return c.ID }),
		}
	}
	fillTabState(&view.TabView, ec.Passengers)
	return ctx.Render(http.StatusOK, "admin_passengers", view)
}

// submitEntity runs a bound form through the tab's controller, turning
// validation failures into banners instead of error pages.
func submitEntity[T any](requestCtx context.Context, ctrl *listview.Controller[T], payload forms.Payload, relations client.Relations, bindErr error) {
	if bindErr != nil {
		var validationErr *client.ValidationError
		if errors.As(bindErr, &validationErr) {
			ctrl.ShowMessage(validationErr.Message, listview.MessageError, validationMessageTTL)
		} else {
			ctrl.ShowMessage("Operation failed. Please try again.", listview.MessageError, validationMessageTTL)
		}
		return
	}
	if err := ctrl.Submit(requestCtx, payload, relations); errors.Is(err, listview.ErrBusy) {
		ctrl.ShowMessage("Another request is still in progress", listview.MessageError, validationMessageTTL)
	}
}

func (controller *AdminController) Submit(ctx echo.Context) error {
	tab, ok := tabOf(ctx)
	if !ok {
		return ctx.Redirect(http.StatusSeeOther, tabPath("airports"))
	}
	ec, _, err := controller.session(ctx)
	if ec == nil {
		return err
	}

	values, err := ctx.FormParams()
	if err != nil {
		controller.logger.ErrorF("AdminController.Submit form parse error: %v", err)
		values = url.Values{}
	}

	requestCtx := ctx.Request().Context()
	switch tab {
	case "cities":
		payload, relations, bindErr := forms.BindCity(values)
		submitEntity(requestCtx, ec.Cities, payload, relations, bindErr)
	case "airports":
		payload, relations, bindErr := forms.BindAirport(values)
		submitEntity(requestCtx, ec.Airports, payload, relations, bindErr)
	case "gates":
		payload, relations, bindErr := forms.BindGate(values)
		submitEntity(requestCtx, ec.Gates, payload, relations, bindErr)
	case "airlines":
		payload, relations, bindErr := forms.BindAirline(values)
		submitEntity(requestCtx, ec.Airlines, payload, relations, bindErr)
	case "aircraft":
		payload, relations, bindErr := forms.BindAircraft(values)
		submitEntity(requestCtx, ec.Aircraft, payload, relations, bindErr)
	case "flights":
		if len(ec.Gates.All()) == 0 {
			_ = ec.Gates.Load(requestCtx)
		}
		if len(ec.Aircraft.All()) == 0 {
			_ = ec.Aircraft.Load(requestCtx)
		}
		payload, relations, bindErr := forms.BindFlight(values, ec.Gates.All(), ec.Aircraft.All())
		submitEntity(requestCtx, ec.Flights, payload, relations, bindErr)
	case "passengers":
		_, editing := ec.Passengers.EditingID()
		payload, relations, bindErr := forms.BindPassenger(values, editing)
		submitEntity(requestCtx, ec.Passengers, payload, relations, bindErr)
	}

	return ctx.Redirect(http.StatusSeeOther, tabPath(tab))
}

func beginEdit[T any](requestCtx context.Context, ctrl *listview.Controller[T], id int64) {
	if len(ctrl.All()) == 0 {
		_ = ctrl.Load(requestCtx)
	}
	if _, ok := ctrl.BeginEdit(id); !ok {
		ctrl.ShowMessage("Item no longer exists", listview.MessageError, validationMessageTTL)
	}
}

func (controller *AdminController) Edit(ctx echo.Context) error {
	tab, ok := tabOf(ctx)
	if !ok {
		return ctx.Redirect(http.StatusSeeOther, tabPath("airports"))
	}
	ec, _, err := controller.session(ctx)
	if ec == nil {
		return err
	}

	id := utils.StrToInt64(ctx.Param("id"), 0)
	requestCtx := ctx.Request().Context()
	switch tab {
	case "cities":
		beginEdit(requestCtx, ec.Cities, id)
	case "airports":
		beginEdit(requestCtx, ec.Airports, id)
	case "gates":
		beginEdit(requestCtx, ec.Gates, id)
	case "airlines":
		beginEdit(requestCtx, ec.Airlines, id)
	case "aircraft":
		beginEdit(requestCtx, ec.Aircraft, id)
	case "flights":
		beginEdit(requestCtx, ec.Flights, id)
	case "passengers":
		beginEdit(requestCtx, ec.Passengers, id)
	}

	return ctx.Redirect(http.StatusSeeOther, tabPath(tab))
}

func (controller *AdminController) CancelEdit(ctx echo.Context) error {
	tab, ok := tabOf(ctx)
	if !ok {
		return ctx.Redirect(http.StatusSeeOther, tabPath("airports"))
	}
	ec, _, err := controller.session(ctx)
	if ec == nil {
		return err
	}

	switch tab {
	case "cities":
		ec.Cities.CancelEdit()
	case "airports":
		ec.Airports.CancelEdit()
	case "gates":
		ec.Gates.CancelEdit()
	case "airlines":
		ec.Airlines.CancelEdit()
	case "aircraft":
		ec.Aircraft.CancelEdit()
	case "flights":
		ec.Flights.CancelEdit()
	case "passengers":
		ec.Passengers.CancelEdit()
	}

	return ctx.Redirect(http.StatusSeeOther, tabPath(tab))
}

func removeEntity[T any](requestCtx context.Context, ctrl *listview.Controller[T], id int64) {
	if len(ctrl.All()) == 0 {
		_ = ctrl.Load(requestCtx)
	}
	if err := ctrl.Remove(requestCtx, id); errors.Is(err, listview.ErrBusy) {
		ctrl.ShowMessage("Another request is still in progress", listview.MessageError, validationMessageTTL)
	}
}

func (controller *AdminController) Delete(ctx echo.Context) error {
	tab, ok := tabOf(ctx)
	if !ok {
		return ctx.Redirect(http.StatusSeeOther, tabPath("airports"))
	}
	ec, _, err := controller.session(ctx)
	if ec == nil {
		return err
	}

	id := utils.StrToInt64(ctx.Param("id"), 0)
	requestCtx := ctx.Request().Context()
	switch tab {
	case "cities":
		removeEntity(requestCtx, ec.Cities, id)
	case "airports":
		removeEntity(requestCtx, ec.Airports, id)
	case "gates":
		removeEntity(requestCtx, ec.Gates, id)
	case "airlines":
		removeEntity(requestCtx, ec.Airlines, id)
	case "aircraft":
		removeEntity(requestCtx, ec.Aircraft, id)
	case "flights":
		removeEntity(requestCtx, ec.Flights, id)
	case "passengers":
		removeEntity(requestCtx, ec.Passengers, id)
	}

	return ctx.Redirect(http.StatusSeeOther, tabPath(tab))
}
