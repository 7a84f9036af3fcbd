// Package client
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	"github.com/codebrew-airways/skybridge/internal/model"
)

// Relation query parameter names, verbatim from the backend contract.
// The simple resources take snake_case ids; the flight endpoints take
// camelCase ones. The asymmetry is the backend's, not ours.
const (
	RelCity             = "city_id"
	RelAirport          = "airport_id"
	RelAirline          = "airline_id"
	RelFlight           = "flight_id"
	RelFlightAircraft   = "aircraftId"
	RelFlightAirline    = "airlineId"
	RelDepartureAirport = "departureAirportId"
	RelArrivalAirport   = "arrivalAirportId"
	RelDepartureGate    = "departureGateId"
	RelArrivalGate      = "arrivalGateId"
)

// AviationClient bundles the per-entity CRUD resources with the public
// lookup endpoints. The admin console and the public pages historically
// pointed at separately configured base URLs, so both are kept.
type AviationClient struct {
	httpClient HTTPClient
	adminBase  string
	publicBase string

	Cities     *Resource[model.City]
	Airports   *Resource[model.Airport]
	Gates      *Resource[model.Gate]
	Airlines   *Resource[model.Airline]
	Aircraft   *Resource[model.Aircraft]
	Flights    *Resource[model.Flight]
	Passengers *PassengerResource
}

// PassengerResource layers booking-aware deletion over the plain CRUD
// resource: the backend refuses to delete a passenger who still holds
// bookings, so Delete unbooks them from every flight first.
type PassengerResource struct {
	*Resource[model.Passenger]
	client *AviationClient
}

func (pr *PassengerResource) Delete(ctx context.Context, id int64) error {
	passenger, err := pr.Resource.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, flight := range passenger.Flights {
		if err := pr.client.RemovePassengerFromFlight(ctx, flight.ID, id); err != nil {
			return err
		}
	}
	return pr.Resource.Delete(ctx, id)
}

type Option func(*AviationClient)

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(ac *AviationClient) {
		ac.httpClient = httpClient
	}
}

func NewAviationClient(config *c.BackendConfig, opts ...Option) *AviationClient {
	ac := &AviationClient{
		httpClient: &http.Client{Timeout: config.RequestDuration},
		adminBase:  config.AdminApiUrl,
		publicBase: config.PublicApiUrl,
	}

	for _, opt := range opts {
		opt(ac)
	}

	ac.Cities = NewResource[model.City](ac.httpClient, ac.adminBase, "/cities")
	ac.Airports = NewResource[model.Airport](ac.httpClient, ac.adminBase, "/airports")
	ac.Gates = NewResource[model.Gate](ac.httpClient, ac.adminBase, "/gates")
	ac.Airlines = NewResource[model.Airline](ac.httpClient, ac.adminBase, "/airlines")
	ac.Aircraft = NewResource[model.Aircraft](ac.httpClient, ac.adminBase, "/aircraft")
	ac.Flights = NewResource[model.Flight](ac.httpClient, ac.adminBase, "/flights")
	ac.Passengers = &PassengerResource{
		Resource: NewResource[model.Passenger](ac.httpClient, ac.adminBase, "/passengers"),
		client:   ac,
	}

	return ac
}

// PublicAirports lists airports through the public API surface.
func (ac *AviationClient) PublicAirports(ctx context.Context) ([]model.Airport, error) {
	var airports []model.Airport
	u := ac.publicBase + "/api/airports"
	if err := doJSON(ctx, ac.httpClient, http.MethodGet, u, nil, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (ac *AviationClient) AirportByCode(ctx context.Context, code string) (*model.Airport, error) {
	airport := &model.Airport{}
	u := fmt.Sprintf("%s/api/airports/code/%s", ac.publicBase, url.PathEscape(code))
	if err := doJSON(ctx, ac.httpClient, http.MethodGet, u, nil, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (ac *AviationClient) Departures(ctx context.Context, airportCode string) ([]model.Flight, error) {
	return ac.flightsByAirport(ctx, "departures", airportCode)
}

func (ac *AviationClient) Arrivals(ctx context.Context, airportCode string) ([]model.Flight, error) {
	return ac.flightsByAirport(ctx, "arrivals", airportCode)
}

func (ac *AviationClient) flightsByAirport(ctx context.Context, direction, airportCode string) ([]model.Flight, error) {
	var flights []model.Flight
	query := url.Values{}
	query.Set("airportCode", airportCode)
	u := fmt.Sprintf("%s/api/flights/%s?%s", ac.publicBase, direction, query.Encode())
	if err := doJSON(ctx, ac.httpClient, http.MethodGet, u, nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// Board fetches the flattened arrival/departure rows for the home page
// board. boardType is "arrivals" or "departures".
func (ac *AviationClient) Board(ctx context.Context, boardType string, start, end time.Time) ([]model.BoardFlight, error) {
	var flights []model.BoardFlight
	query := url.Values{}
	query.Set("type", boardType)
	query.Set("start", start.UTC().Format(time.RFC3339))
	query.Set("end", end.UTC().Format(time.RFC3339))
	u := fmt.Sprintf("%s/api/flights?%s", ac.publicBase, query.Encode())
	if err := doJSON(ctx, ac.httpClient, http.MethodGet, u, nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (ac *AviationClient) FlightByID(ctx context.Context, id int64) (*model.Flight, error) {
	flight := &model.Flight{}
	u := fmt.Sprintf("%s/flights/%d", ac.publicBase, id)
	if err := doJSON(ctx, ac.httpClient, http.MethodGet, u, nil, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (ac *AviationClient) FlightPassengers(ctx context.Context, flightID int64) ([]model.Passenger, error) {
	var passengers []model.Passenger
	u := fmt.Sprintf("%s/flights/%d/passengers", ac.adminBase, flightID)
	if err := doJSON(ctx, ac.httpClient, http.MethodGet, u, nil, &passengers); err != nil {
		return nil, err
	}
	return passengers, nil
}

func (ac *AviationClient) AddPassengerToFlight(ctx context.Context, flightID, passengerID int64) error {
	u := fmt.Sprintf("%s/flights/%d/passengers/%d", ac.adminBase, flightID, passengerID)
	return doJSON(ctx, ac.httpClient, http.MethodPost, u, nil, nil)
}

func (ac *AviationClient) RemovePassengerFromFlight(ctx context.Context, flightID, passengerID int64) error {
	u := fmt.Sprintf("%s/flights/%d/passengers/%d", ac.adminBase, flightID, passengerID)
	return doJSON(ctx, ac.httpClient, http.MethodDelete, u, nil, nil)
}
