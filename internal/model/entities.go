// Package model holds the entity records exchanged verbatim with the
// aviation backend. The front end never owns canonical identity, it only
// projects these records for display and editing.
package model

import "strconv"

type City struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Province   string `json:"province,omitempty"`
	Population int64  `json:"population"`
}

type Airport struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Timezone string `json:"timezone,omitempty"`
	City     *City  `json:"city,omitempty"`
}

type Gate struct {
	ID         int64    `json:"id"`
	GateNumber string   `json:"gateNumber"`
	Status     string   `json:"status,omitempty"`
	Airport    *Airport `json:"airport,omitempty"`
}

type Airline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City *City  `json:"city,omitempty"`
}

type Aircraft struct {
	ID                 int64    `json:"id"`
	Type               string   `json:"type"`
	NumberOfPassengers int      `json:"numberOfPassengers"`
	Airline            *Airline `json:"airline,omitempty"`
}

type Flight struct {
	ID               int64       `json:"id"`
	Status           string      `json:"status"`
	DepartureTime    string      `json:"departureTime,omitempty"`
	ArrivalTime      string      `json:"arrivalTime,omitempty"`
	DepartureAirport *Airport    `json:"departureAirport,omitempty"`
	ArrivalAirport   *Airport    `json:"arrivalAirport,omitempty"`
	DepartureGate    *Gate       `json:"departureGate,omitempty"`
	ArrivalGate      *Gate       `json:"arrivalGate,omitempty"`
	Aircraft         *Aircraft   `json:"aircraft,omitempty"`
	Airline          *Airline    `json:"airline,omitempty"`
	Passengers       []Passenger `json:"passengers,omitempty"`
}

type Passenger struct {
	ID        int64    `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Phone     string   `json:"phone,omitempty"`
	City      *City    `json:"city,omitempty"`
	Flights   []Flight `json:"flights,omitempty"`
}

// BoardFlight is the flattened row shape served by the public board
// endpoint (/api/flights). It carries display strings, not relations.
type BoardFlight struct {
	ID           int64  `json:"id"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	Date         string `json:"date"`
	To           string `json:"to,omitempty"`
	From         string `json:"from,omitempty"`
	Status       string `json:"status"`
}

// Searchable projections. Each entity exposes the exact set of fields
// the admin console matches a free-text query against, including one
// level of related-entity display fields.

func (c City) SearchFields() []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		c.Province,
		strconv.FormatInt(c.Population, 10),
	}
}

func (a Airport) SearchFields() []string {
	fields := []string{strconv.FormatInt(a.ID, 10), a.Name, a.Code}
	if a.City != nil {
		fields = append(fields, a.City.Name)
	}
	return fields
}

func (g Gate) SearchFields() []string {
	fields := []string{strconv.FormatInt(g.ID, 10), g.GateNumber, g.Status}
	if g.Airport != nil {
		fields = append(fields, g.Airport.Code, g.Airport.Name)
	}
	return fields
}

func (a Airline) SearchFields() []string {
	fields := []string{strconv.FormatInt(a.ID, 10), a.Name, a.Code}
	if a.City != nil {
		fields = append(fields, a.City.Name)
	}
	return fields
}

func (a Aircraft) SearchFields() []string {
	fields := []string{strconv.FormatInt(a.ID, 10), a.Type, strconv.Itoa(a.NumberOfPassengers)}
	if a.Airline != nil {
		fields = append(fields, a.Airline.Name)
	}
	return fields
}

func (f Flight) SearchFields() []string {
	fields := []string{strconv.FormatInt(f.ID, 10), f.Status}
	if f.DepartureAirport != nil {
		fields = append(fields, f.DepartureAirport.Code)
	}
	if f.ArrivalAirport != nil {
		fields = append(fields, f.ArrivalAirport.Code)
	}
	if f.Aircraft != nil {
		fields = append(fields, f.Aircraft.Type)
	}
	if f.Airline != nil {
		fields = append(fields, f.Airline.Name)
	}
	return fields
}

func (p Passenger) SearchFields() []string {
	fields := []string{
		strconv.FormatInt(p.ID, 10),
		p.FirstName + " " + p.LastName,
		p.Phone,
	}
	if p.City != nil {
		fields = append(fields, p.City.Name)
	}
	for _, f := range p.Flights {
		if f.DepartureAirport != nil {
			fields = append(fields, f.DepartureAirport.Code)
		}
		if f.ArrivalAirport != nil {
			fields = append(fields, f.ArrivalAirport.Code)
		}
		fields = append(fields, f.Status)
	}
	return fields
}

// Nil-safe display accessors used by the templates.

func (f Flight) DepartureCode() string {
	if f.DepartureAirport == nil {
		return "-"
	}
	return f.DepartureAirport.Code
}

func (f Flight) ArrivalCode() string {
	if f.ArrivalAirport == nil {
		return "-"
	}
	return f.ArrivalAirport.Code
}

func (f Flight) DepartureGateNumber() string {
	if f.DepartureGate == nil {
		return "-"
	}
	return f.DepartureGate.GateNumber
}

func (f Flight) ArrivalGateNumber() string {
	if f.ArrivalGate == nil {
		return "-"
	}
	return f.ArrivalGate.GateNumber
}

func (f Flight) AircraftType() string {
	if f.Aircraft == nil {
		return "-"
	}
	return f.Aircraft.Type
}

func (f Flight) AirlineName() string {
	if f.Airline == nil {
		return "-"
	}
	return f.Airline.Name
}

func (f Flight) StatusOrDefault() string {
	if f.Status == "" {
		return "Scheduled"
	}
	return f.Status
}
