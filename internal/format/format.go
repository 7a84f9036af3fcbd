// Package format holds the pure display computations for flight data:
// date/time rendering, flight duration, and the synthesized flight
// number labels. Nothing here talks to the network.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
	"github.com/codebrew-airways/skybridge/internal/model"
)

type DateTimeParts struct {
	Date string
	Time string
}

type FullDateParts struct {
	Weekday      string
	DateLong     string
	TimeWithZone string
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseISO(value string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders an ISO timestamp as a short date and a 12-hour
// clock time. An explicit IANA timezone shifts the time component only;
// empty or unparseable input yields the placeholder pair.
func FormatDateTime(iso string, timezone string) DateTimeParts {
	placeholder := DateTimeParts{Date: global.DisplayPlaceholder, Time: global.DisplayPlaceholder}
	if iso == "" {
		return placeholder
	}
	t, ok := parseISO(iso)
	if !ok {
		return placeholder
	}

	clock := t
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			clock = t.In(loc)
		}
	}

	return DateTimeParts{
		Date: t.Format("Jan 2"),
		Time: clock.Format("3:04 PM"),
	}
}

// FormatFullDate is the flight-detail variant: long weekday and date
// plus a time carrying its zone abbreviation.
func FormatFullDate(iso string, timezone string) FullDateParts {
	placeholder := FullDateParts{
		Weekday:      global.DisplayPlaceholder,
		DateLong:     global.DisplayPlaceholder,
		TimeWithZone: global.DisplayPlaceholder,
	}
	if iso == "" {
		return placeholder
	}
	t, ok := parseISO(iso)
	if !ok {
		return placeholder
	}

	clock := t
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			clock = t.In(loc)
		}
	}

	return FullDateParts{
		Weekday:      t.Format("Monday"),
		DateLong:     t.Format("Monday, January 2, 2006"),
		TimeWithZone: clock.Format("3:04 PM MST"),
	}
}

// ComputeDuration reports end minus start as "{hours}h {minutes:02}m"
// over whole minutes. Missing bounds or end <= start yield the
// placeholder, never a negative duration.
func ComputeDuration(startISO, endISO string) string {
	if startISO == "" || endISO == "" {
		return global.DisplayPlaceholder
	}
	start, okStart := parseISO(startISO)
	end, okEnd := parseISO(endISO)
	if !okStart || !okEnd {
		return global.DisplayPlaceholder
	}
	diff := end.Sub(start)
	if diff <= 0 {
		return global.DisplayPlaceholder
	}

	minutes := int(diff.Minutes())
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// FlightNumber synthesizes the display label for an admin/detail flight:
// uppercased airline code plus the flight id. This is display-only, not
// the backend's canonical flight number.
func FlightNumber(flight model.Flight) string {
	if flight.Airline == nil || flight.Airline.Code == "" {
		return fmt.Sprintf("Error%d", flight.ID)
	}
	return fmt.Sprintf("%s%d", strings.ToUpper(flight.Airline.Code), flight.ID)
}

var twoDigits = regexp.MustCompile(`\d{2}`)

// BoardFlightNumber is the historical public-board variant: airline
// initials, the first two digits of the raw flight number, then the id.
// It deliberately disagrees with FlightNumber; which one is canonical is
// an open product question, so both algorithms are kept where their
// pages used them.
func BoardFlightNumber(flight model.BoardFlight) string {
	parts := strings.Fields(flight.Airline)
	var code string
	switch {
	case len(parts) == 0:
		code = ""
	case len(parts) > 1:
		code = upperInitial(parts[0]) + upperInitial(parts[1])
	case len(parts[0]) > 1:
		code = strings.ToUpper(parts[0][:2])
	default:
		code = upperInitial(parts[0])
	}

	numberPart := "00"
	if match := twoDigits.FindString(flight.FlightNumber); match != "" {
		numberPart = match
	}

	return fmt.Sprintf("%s%s%d", code, numberPart, flight.ID)
}

func upperInitial(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1])
}
