// Package controller
package controller

// Page carries the fields the shared layout needs on every render.
type Page struct {
	Title   string
	Active  string
	IsAdmin bool
}
