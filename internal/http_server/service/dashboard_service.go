// Package service
package service

import (
	"errors"
	"sync"
	"time"

	"github.com/codebrew-airways/skybridge/internal/client"
	c "github.com/codebrew-airways/skybridge/internal/interfaces/config"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
	. "github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/codebrew-airways/skybridge/internal/listview"
	"github.com/codebrew-airways/skybridge/internal/model"
)

// successMessageTTL matches how long success banners stayed up in the
// console before fading.
const successMessageTTL = 8 * time.Second

type dashboardSession struct {
	controllers *EntityControllers
	lastSeen    time.Time
}

// DashboardService keys dashboard state by admin session so two
// logged-in browsers never share search terms or pending edits.
type DashboardService struct {
	logger    log.LoggerInterface
	apiClient *client.AviationClient
	jwt       *c.JWTConfig

	mu       sync.Mutex
	sessions map[string]*dashboardSession
}

func NewDashboardService(logger log.LoggerInterface, jwt *c.JWTConfig, apiClient *client.AviationClient) *DashboardService {
	return &DashboardService{
		logger:    logger,
		apiClient: apiClient,
		jwt:       jwt,
		sessions:  make(map[string]*dashboardSession),
	}
}

func (dashboardService *DashboardService) Controllers(sessionID string) *EntityControllers {
	dashboardService.mu.Lock()
	defer dashboardService.mu.Unlock()

	if session, ok := dashboardService.sessions[sessionID]; ok {
		session.lastSeen = time.Now()
		return session.controllers
	}

	dashboardService.logger.DebugF("Creating dashboard state for session %s", sessionID)
	controllers := dashboardService.newControllers()
	dashboardService.sessions[sessionID] = &dashboardSession{
		controllers: controllers,
		lastSeen:    time.Now(),
	}
	return controllers
}

func (dashboardService *DashboardService) DropSession(sessionID string) {
	dashboardService.mu.Lock()
	session, ok := dashboardService.sessions[sessionID]
	delete(dashboardService.sessions, sessionID)
	dashboardService.mu.Unlock()

	if ok {
		session.controllers.Close()
	}
}

// StartCleanup drops sessions idle for longer than the token lifetime.
// Their cookies have expired anyway, the state is unreachable.
func (dashboardService *DashboardService) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			dashboardService.cleanup()
		}
	}()
}

func (dashboardService *DashboardService) cleanup() {
	threshold := time.Now().Add(-dashboardService.jwt.ExpiresDuration)

	dashboardService.mu.Lock()
	var stale []*dashboardSession
	for sessionID, session := range dashboardService.sessions {
		if session.lastSeen.Before(threshold) {
			stale = append(stale, session)
			delete(dashboardService.sessions, sessionID)
		}
	}
	dashboardService.mu.Unlock()

	for _, session := range stale {
		session.controllers.Close()
	}
	if len(stale) > 0 {
		dashboardService.logger.DebugF("Dropped %d expired dashboard sessions", len(stale))
	}
}

func (dashboardService *DashboardService) newControllers() *EntityControllers {
	logger := dashboardService.logger
	api := dashboardService.apiClient
	return &EntityControllers{
		Cities: listview.NewController(listview.Config[model.City]{
			EntityName:   "city",
			PluralName:   "cities",
			ID:           func(c model.City) int64 { return c.ID },
			SearchFields: model.City.SearchFields,
			SuccessTTL:   successMessageTTL,
		}, api.Cities, logger),
		Airports: listview.NewController(listview.Config[model.Airport]{
			EntityName:   "airport",
			ID:           func(a model.Airport) int64 { return a.ID },
			SearchFields: model.Airport.SearchFields,
			SuccessTTL:   successMessageTTL,
		}, api.Airports, logger),
		Gates: listview.NewController(listview.Config[model.Gate]{
			EntityName:   "gate",
			ID:           func(g model.Gate) int64 { return g.ID },
			SearchFields: model.Gate.SearchFields,
			SuccessTTL:   successMessageTTL,
		}, api.Gates, logger),
		Airlines: listview.NewController(listview.Config[model.Airline]{
			EntityName:   "airline",
			ID:           func(a model.Airline) int64 { return a.ID },
			SearchFields: model.Airline.SearchFields,
			SuccessTTL:   successMessageTTL,
		}, api.Airlines, logger),
		Aircraft: listview.NewController(listview.Config[model.Aircraft]{
			EntityName:   "aircraft",
			PluralName:   "aircraft",
			ID:           func(a model.Aircraft) int64 { return a.ID },
			SearchFields: model.Aircraft.SearchFields,
			SuccessTTL:   successMessageTTL,
		}, api.Aircraft, logger),
		Flights: listview.NewController(listview.Config[model.Flight]{
			EntityName:   "flight",
			ID:           func(f model.Flight) int64 { return f.ID },
			SearchFields: model.Flight.SearchFields,
			DeleteGuard: func(f model.Flight) error {
				if len(f.Passengers) > 0 {
					return errors.New("Cannot delete flight: passengers are attached")
				}
				return nil
			},
			SuccessTTL: successMessageTTL,
		}, api.Flights, logger),
		Passengers: listview.NewController(listview.Config[model.Passenger]{
			EntityName:   "passenger",
			ID:           func(p model.Passenger) int64 { return p.ID },
			SearchFields: model.Passenger.SearchFields,
			SuccessTTL:   successMessageTTL,
		}, api.Passengers, logger),
	}
}
