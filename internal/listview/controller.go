// Package listview implements the admin console's list management
// pattern once, generically: load the full collection, filter it
// client-side against a free-text query, track a single pending edit,
// and reload after every mutation. The backend stays the source of
// truth; the held list is only a stale-until-reload cache.
package listview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/interfaces/log"
)

// ErrBusy is returned when a mutation is submitted while another one is
// still in flight. Double submits used to silently race.
var ErrBusy = errors.New("another request is already in flight")

// ErrNotFound is returned when an edit or delete targets an id that is
// no longer in the loaded list.
var ErrNotFound = errors.New("item not found in loaded list")

type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload interface{}, relations client.Relations) error
	Update(ctx context.Context, id int64, payload interface{}, relations client.Relations) error
	Delete(ctx context.Context, id int64) error
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
	MessageEditing MessageKind = "editing"
)

type StatusMessage struct {
	Text      string
	Kind      MessageKind
	expiresAt time.Time
}

func (m *StatusMessage) expired() bool {
	return !m.expiresAt.IsZero() && time.Now().After(m.expiresAt)
}

// Config parameterizes a Controller for one entity kind.
type Config[T any] struct {
	// EntityName is the lowercase singular used in status messages.
	EntityName string
	// PluralName overrides EntityName+"s" where that spelling is wrong.
	PluralName string
	// ID extracts the server-assigned identity.
	ID func(T) int64
	// SearchFields is the searchable projection: every string a
	// free-text query is matched against.
	SearchFields func(T) []string
	// DeleteGuard, when set, can veto a delete before any request is
	// issued. The returned error text becomes the status message.
	DeleteGuard func(T) error
	// SuccessTTL bounds how long success banners stay up. Zero keeps
	// them until the next state change.
	SuccessTTL time.Duration
}

type Controller[T any] struct {
	mu     sync.Mutex
	config Config[T]
	source Source[T]
	logger log.LoggerInterface

	allItems  []T
	query     string
	editingID int64
	editing   bool
	status    *StatusMessage
	busy      bool
	closed    bool
}

func NewController[T any](config Config[T], source Source[T], logger log.LoggerInterface) *Controller[T] {
	return &Controller[T]{
		config: config,
		source: source,
		logger: logger,
	}
}

// Load replaces the held list with a fresh fetch. On failure the
// previous list is left untouched and an error banner is raised.
func (c *Controller[T]) Load(ctx context.Context) error {
	items, err := c.source.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// The tab went away while the request was in flight.
		return nil
	}
	if err != nil {
		c.logger.ErrorF("Failed to load %s list: %v", c.config.EntityName, err)
		c.setStatusLocked(fmt.Sprintf("Failed to load %s", c.config.plural()), MessageError, 0)
		return err
	}
	c.allItems = items
	return nil
}

func (c *Controller[T]) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

func (c *Controller[T]) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Items returns the filtered view: an order-preserving subsequence of
// the last loaded list, matched case-insensitively against the
// searchable projection. Filtering never reorders.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query == "" {
		return append([]T(nil), c.allItems...)
	}
	term := strings.ToLower(c.query)
	matched := make([]T, 0, len(c.allItems))
	for _, item := range c.allItems {
		for _, field := range c.config.SearchFields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

func (c *Controller[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.allItems...)
}

// BeginEdit marks the entity as the single pending edit and returns it
// for form prefill.
func (c *Controller[T]) BeginEdit(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.allItems {
		if c.config.ID(item) == id {
			c.editingID = id
			c.editing = true
			c.setStatusLocked(fmt.Sprintf("Now editing %s %d", c.config.EntityName, id), MessageEditing, 0)
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T]) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = false
	c.editingID = 0
	c.status = nil
}

func (c *Controller[T]) EditingID() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID, c.editing
}

// Submit creates or updates depending on whether an edit is pending.
// Success clears the edit slot, raises an auto-expiring banner, and
// reloads; failure keeps the edit slot (and the caller's form state) so
// the user can retry without re-entering data.
func (c *Controller[T]) Submit(ctx context.Context, payload interface{}, relations client.Relations) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	editing, editingID := c.editing, c.editingID
	c.mu.Unlock()

	var err error
	var verb string
	if editing {
		verb = "updated"
		err = c.source.Update(ctx, editingID, payload, relations)
	} else {
		verb = "added"
		err = c.source.Create(ctx, payload, relations)
	}

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.logger.ErrorF("Submit for %s failed: %v", c.config.EntityName, err)
		c.setStatusLocked("Operation failed. Please try again.", MessageError, 0)
		c.mu.Unlock()
		return err
	}
	c.editing = false
	c.editingID = 0
	c.setStatusLocked(fmt.Sprintf("Successfully %s %s", verb, c.config.EntityName), MessageSuccess, c.config.SuccessTTL)
	c.mu.Unlock()

	return c.Load(ctx)
}

// Remove deletes the entity after running the configured guard. Guard
// rejections short-circuit locally without issuing any request. Backend
// rejections surface as a deliberately generic message; the server
// error body is never parsed.
func (c *Controller[T]) Remove(ctx context.Context, id int64) error {
	c.mu.Lock()
	var target T
	found := false
	for _, item := range c.allItems {
		if c.config.ID(item) == id {
			target = item
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return ErrNotFound
	}
	if c.config.DeleteGuard != nil {
		if err := c.config.DeleteGuard(target); err != nil {
			c.setStatusLocked(err.Error(), MessageError, 0)
			c.mu.Unlock()
			return err
		}
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	err := c.source.Delete(ctx, id)

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.logger.ErrorF("Delete of %s %d failed: %v", c.config.EntityName, id, err)
		c.setStatusLocked(fmt.Sprintf("Cannot delete %s: it may be referenced elsewhere", c.config.EntityName), MessageError, 0)
		c.mu.Unlock()
		return err
	}
	c.setStatusLocked(fmt.Sprintf("Successfully deleted %s", c.config.EntityName), MessageSuccess, c.config.SuccessTTL)
	c.mu.Unlock()

	return c.Load(ctx)
}

// ShowMessage raises a banner directly, used for rejections that never
// reach the backend.
func (c *Controller[T]) ShowMessage(text string, kind MessageKind, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setStatusLocked(text, kind, ttl)
}

// Status returns the current banner, or nil once it has expired.
func (c *Controller[T]) Status() *StatusMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != nil && c.status.expired() {
		c.status = nil
	}
	return c.status
}

// Close marks the controller dead. Results of requests still in flight
// are discarded instead of mutating state that no longer has a viewer.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (cfg Config[T]) plural() string {
	if cfg.PluralName != "" {
		return cfg.PluralName
	}
	return cfg.EntityName + "s"
}

func (c *Controller[T]) setStatusLocked(text string, kind MessageKind, ttl time.Duration) {
	message := &StatusMessage{Text: text, Kind: kind}
	if ttl > 0 {
		message.expiresAt = time.Now().Add(ttl)
	}
	c.status = message
}
