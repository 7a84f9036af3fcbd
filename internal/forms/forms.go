// Package forms turns submitted admin form values into backend payloads
// and relation ids. Binders trim text inputs, coerce numbers with a
// zero fallback, uppercase airline and airport codes, and reject
// submissions missing a required relation before any request is built.
// Dependent relations (gates per airport, aircraft per airline) are
// checked against the loaded collections, so a stale select value left
// over from a different parent never reaches the backend.
package forms

import (
	"net/url"
	"strings"

	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/model"
	"github.com/codebrew-airways/skybridge/internal/utils"
)

// Payload is the JSON body sent to the backend. Maps are used instead
// of structs so optional fields can carry an explicit null.
type Payload map[string]interface{}

func trimmed(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func numberOrZero(raw string) int64 {
	if raw == "" {
		return 0
	}
	return utils.StrToInt64(raw, 0)
}

// relationID parses an optional select value. Empty means unselected.
func relationID(values url.Values, key string) (int64, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, false
	}
	return utils.StrToInt64(raw, 0), true
}

func BindCity(values url.Values) (Payload, client.Relations, error) {
	payload := Payload{
		"name":       trimmed(values, "name"),
		"province":   trimmed(values, "province"),
		"population": numberOrZero(trimmed(values, "population")),
	}
	return payload, nil, nil
}

func BindAirport(values url.Values) (Payload, client.Relations, error) {
	cityID, ok := relationID(values, "cityId")
	if !ok {
		return nil, nil, client.NewValidationError("Please select a city for the airport")
	}
	payload := Payload{
		"name": trimmed(values, "name"),
		"code": strings.ToUpper(trimmed(values, "code")),
	}
	return payload, client.Relations{client.RelCity: cityID}, nil
}

func BindGate(values url.Values) (Payload, client.Relations, error) {
	airportID, ok := relationID(values, "airportId")
	if !ok {
		return nil, nil, client.NewValidationError("Please select an airport for the gate")
	}
	payload := Payload{
		"gateNumber": trimmed(values, "gateNumber"),
	}
	if status := trimmed(values, "status"); status != "" {
		payload["status"] = status
	} else {
		payload["status"] = nil
	}
	return payload, client.Relations{client.RelAirport: airportID}, nil
}

func BindAirline(values url.Values) (Payload, client.Relations, error) {
	payload := Payload{
		"name": trimmed(values, "name"),
		"code": strings.ToUpper(trimmed(values, "code")),
	}
	var relations client.Relations
	if cityID, ok := relationID(values, "cityId"); ok {
		relations = client.Relations{client.RelCity: cityID}
	}
	return payload, relations, nil
}

func BindAircraft(values url.Values) (Payload, client.Relations, error) {
	airlineID, ok := relationID(values, "airlineId")
	if !ok {
		return nil, nil, client.NewValidationError("Please select an airline for the aircraft")
	}
	payload := Payload{
		"type":               trimmed(values, "type"),
		"numberOfPassengers": numberOrZero(trimmed(values, "numberOfPassengers")),
	}
	return payload, client.Relations{client.RelAirline: airlineID}, nil
}

func gateBelongsTo(gates []model.Gate, gateID, airportID int64) bool {
	gate, ok := utils.Find(gates, func(g model.Gate) bool { return g.ID == gateID })
	if !ok {
		return false
	}
	return gate.Airport != nil && gate.Airport.ID == airportID
}

func aircraftBelongsTo(aircraft []model.Aircraft, aircraftID, airlineID int64) bool {
	craft, ok := utils.Find(aircraft, func(a model.Aircraft) bool { return a.ID == aircraftID })
	if !ok {
		return false
	}
	return craft.Airline != nil && craft.Airline.ID == airlineID
}

// BindFlight requires both endpoint airports; every other relation is
// optional and omitted when unselected. Gate and aircraft ids are kept
// only when they belong to the selected airport or airline, dropping
// stale selections left over after the parent changed.
func BindFlight(values url.Values, gates []model.Gate, aircraft []model.Aircraft) (Payload, client.Relations, error) {
	departureAirport, hasDeparture := relationID(values, "departureAirportId")
	arrivalAirport, hasArrival := relationID(values, "arrivalAirportId")
	if !hasDeparture || !hasArrival {
		return nil, nil, client.NewValidationError("Please select both departure and arrival airports")
	}

	status := trimmed(values, "status")
	if status == "" {
		status = "Scheduled"
	}
	payload := Payload{"status": status}
	if departureTime := trimmed(values, "departureTime"); departureTime != "" {
		payload["departureTime"] = departureTime
	} else {
		payload["departureTime"] = nil
	}
	if arrivalTime := trimmed(values, "arrivalTime"); arrivalTime != "" {
		payload["arrivalTime"] = arrivalTime
	} else {
		payload["arrivalTime"] = nil
	}

	relations := client.Relations{
		client.RelDepartureAirport: departureAirport,
		client.RelArrivalAirport:   arrivalAirport,
	}
	airlineID, hasAirline := relationID(values, "airlineId")
	if hasAirline {
		relations[client.RelFlightAirline] = airlineID
	}
	if id, ok := relationID(values, "aircraftId"); ok && hasAirline && aircraftBelongsTo(aircraft, id, airlineID) {
		relations[client.RelFlightAircraft] = id
	}
	if id, ok := relationID(values, "departureGateId"); ok && gateBelongsTo(gates, id, departureAirport) {
		relations[client.RelDepartureGate] = id
	}
	if id, ok := relationID(values, "arrivalGateId"); ok && gateBelongsTo(gates, id, arrivalAirport) {
		relations[client.RelArrivalGate] = id
	}
	return payload, relations, nil
}

// BindPassenger always requires a city. A flight is required only when
// creating, since an existing passenger keeps their bookings.
func BindPassenger(values url.Values, editing bool) (Payload, client.Relations, error) {
	cityID, hasCity := relationID(values, "cityId")
	if !hasCity {
		return nil, nil, client.NewValidationError("City is required")
	}
	flightID, hasFlight := relationID(values, "flightId")
	if !editing && !hasFlight {
		return nil, nil, client.NewValidationError("Flight is required when adding a new passenger")
	}

	payload := Payload{
		"firstName": trimmed(values, "firstName"),
		"lastName":  trimmed(values, "lastName"),
	}
	if phone := trimmed(values, "phone"); phone != "" {
		payload["phone"] = phone
	} else {
		payload["phone"] = nil
	}

	relations := client.Relations{client.RelCity: cityID}
	if !editing && hasFlight {
		relations[client.RelFlight] = flightID
	}
	return payload, relations, nil
}
