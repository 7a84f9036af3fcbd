// Package client
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codebrew-airways/skybridge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cities", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		_ = json.NewEncoder(w).Encode([]model.City{
			{ID: 1, Name: "Gander", Province: "NL", Population: 10000},
			{ID: 2, Name: "St. John's", Province: "NL", Population: 110000},
		})
	}))
	defer server.Close()

	resource := NewResource[model.City](server.Client(), server.URL, "/cities")
	cities, err := resource.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Gander", cities[0].Name)
	assert.Equal(t, int64(2), cities[1].ID)
}

func TestResourceCreateSendsRelationsAsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/airports", r.URL.Path)
		gotQuery = r.URL.Query()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	resource := NewResource[model.Airport](server.Client(), server.URL, "/airports")
	payload := map[string]interface{}{"name": "Gander Intl", "code": "YQX"}
	err := resource.Create(context.Background(), payload, Relations{RelCity: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, gotQuery["city_id"])
	assert.Equal(t, "YQX", gotBody["code"])
}

func TestResourceCreateOmitsAbsentRelations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	resource := NewResource[model.Airline](server.Client(), server.URL, "/airlines")
	err := resource.Create(context.Background(), map[string]interface{}{"name": "Porter", "code": "PD"}, nil)
	require.NoError(t, err)
}

func TestResourceUpdateTargetsItemPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/gates/9", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("airport_id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resource := NewResource[model.Gate](server.Client(), server.URL, "/gates")
	err := resource.Update(context.Background(), 9, map[string]interface{}{"gateNumber": "A4"}, Relations{RelAirport: 3})
	require.NoError(t, err)
}

func TestResourceErrorTaxonomy(t *testing.T) {
	t.Run("non-2xx yields ApiError with status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "conflict", http.StatusConflict)
		}))
		defer server.Close()

		resource := NewResource[model.City](server.Client(), server.URL, "/cities")
		err := resource.Delete(context.Background(), 5)
		var apiErr *ApiError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("unreachable backend yields NetworkError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		resource := NewResource[model.City](http.DefaultClient, server.URL, "/cities")
		_, err := resource.List(context.Background())
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
	})
}

func TestAviationClientPublicEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/airports/code/YQX":
			_ = json.NewEncoder(w).Encode(model.Airport{ID: 1, Name: "Gander Intl", Code: "YQX"})
		case "/api/flights/departures":
			assert.Equal(t, "YQX", r.URL.Query().Get("airportCode"))
			_ = json.NewEncoder(w).Encode([]model.Flight{{ID: 4, Status: "On Time"}})
		case "/flights/4/passengers":
			_ = json.NewEncoder(w).Encode([]model.Passenger{{ID: 7, FirstName: "Ada"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	backend := backendConfigForTest(server.URL)
	ac := NewAviationClient(backend, WithHTTPClient(server.Client()))

	airport, err := ac.AirportByCode(context.Background(), "YQX")
	require.NoError(t, err)
	assert.Equal(t, "Gander Intl", airport.Name)

	departures, err := ac.Departures(context.Background(), "YQX")
	require.NoError(t, err)
	require.Len(t, departures, 1)
	assert.Equal(t, int64(4), departures[0].ID)

	passengers, err := ac.FlightPassengers(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, passengers, 1)
	assert.Equal(t, "Ada", passengers[0].FirstName)
}

func TestPassengerDeleteUnbooksFlightsFirst(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet && r.URL.Path == "/passengers/5" {
			_ = json.NewEncoder(w).Encode(model.Passenger{
				ID:        5,
				FirstName: "Ada",
				Flights:   []model.Flight{{ID: 7}, {ID: 8}},
			})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ac := NewAviationClient(backendConfigForTest(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, ac.Passengers.Delete(context.Background(), 5))

	assert.Equal(t, []string{
		"GET /passengers/5",
		"DELETE /flights/7/passengers/5",
		"DELETE /flights/8/passengers/5",
		"DELETE /passengers/5",
	}, calls)
}

func TestPassengerDeleteStopsWhenUnbookFails(t *testing.T) {
	var deleted bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/passengers/5":
			_ = json.NewEncoder(w).Encode(model.Passenger{ID: 5, Flights: []model.Flight{{ID: 7}}})
		case r.Method == http.MethodDelete && r.URL.Path == "/flights/7/passengers/5":
			w.WriteHeader(http.StatusConflict)
		case r.Method == http.MethodDelete && r.URL.Path == "/passengers/5":
			deleted = true
		}
	}))
	defer server.Close()

	ac := NewAviationClient(backendConfigForTest(server.URL), WithHTTPClient(server.Client()))
	err := ac.Passengers.Delete(context.Background(), 5)

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, deleted)
}
