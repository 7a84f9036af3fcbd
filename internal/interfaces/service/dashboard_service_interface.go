// Package service
package service

import (
	"github.com/codebrew-airways/skybridge/internal/listview"
	"github.com/codebrew-airways/skybridge/internal/model"
)

// EntityControllers bundles the per-entity list controllers backing one
// admin session's dashboard.
type EntityControllers struct {
	Cities     *listview.Controller[model.City]
	Airports   *listview.Controller[model.Airport]
	Gates      *listview.Controller[model.Gate]
	Airlines   *listview.Controller[model.Airline]
	Aircraft   *listview.Controller[model.Aircraft]
	Flights    *listview.Controller[model.Flight]
	Passengers *listview.Controller[model.Passenger]
}

func (ec *EntityControllers) Close() {
	ec.Cities.Close()
	ec.Airports.Close()
	ec.Gates.Close()
	ec.Airlines.Close()
	ec.Aircraft.Close()
	ec.Flights.Close()
	ec.Passengers.Close()
}

type DashboardServiceInterface interface {
	// Controllers returns the session's controllers, creating them on
	// first touch.
	Controllers(sessionID string) *EntityControllers
	// DropSession closes and forgets a session's controllers.
	DropSession(sessionID string)
}
