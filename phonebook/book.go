// Package phonebook holds the address book state: the committed contacts,
// the create/edit session and the pending deletion. Presentation layers
// drive it through one [Book] method per user intent.
package phonebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/VictoriaMetrics/metrics"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

// Book serializes intents: each method runs to completion before the next
// one starts, so an intent's validation, transition and store mutation are
// observed as a whole.
type Book struct {
	mu       sync.Mutex
	store    ds.ContactsStore
	newID    func() ds.UUID
	logger   *slog.Logger
	metrics  *bookMetrics
	session  Session
	deletion Deletion
}

type Option func(*Book)

// WithIDSource sets the generator of contact and phone entry identifiers.
func WithIDSource(newID func() ds.UUID) Option { return func(b *Book) { b.newID = newID } }

func WithLogger(logger *slog.Logger) Option { return func(b *Book) { b.logger = logger } }

// WithMetrics registers the book's counters in set. A set can serve a single book.
func WithMetrics(set *metrics.Set) Option {
	return func(b *Book) { b.metrics = newBookMetrics(set, b.store) }
}

func New(store ds.ContactsStore, opts ...Option) *Book {
	b := &Book{
		store:  store,
		newID:  ds.NewUUID,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.session.close()
	return b
}

// SessionView is a snapshot of the edit session, safe to keep and mutate.
type SessionView struct {
	State         SessionState
	ContactID     ds.ContactID
	Draft         Draft
	Errors        Errors
	VisibleErrors Errors
	CanSubmit     bool
}

func (b *Book) List(ctx context.Context) ([]*ds.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.List(ctx)
}

func (b *Book) Get(ctx context.Context, id ds.ContactID) (*ds.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Get(ctx, id)
}

func (b *Book) Session() SessionView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return SessionView{
		State:         b.session.State(),
		ContactID:     b.session.ContactID(),
		Draft:         b.session.Draft(),
		Errors:        b.session.Errors(),
		VisibleErrors: b.session.VisibleErrors(),
		CanSubmit:     b.session.CanSubmit(),
	}
}

func (b *Book) Deletion() DeletionView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DeletionView{
		Pending:   b.deletion.pending,
		ContactID: b.deletion.target,
		Name:      b.deletion.name,
	}
}

func (b *Book) OpenForCreate(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.session.openForCreate(b.newID); err != nil {
		return err
	}
	b.logger.DebugContext(ctx, "session opened", "state", b.session.State(), "contact", b.session.ContactID())
	return nil
}

// OpenForEdit copies the stored contact into a new draft.
func (b *Book) OpenForEdit(ctx context.Context, id ds.ContactID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session.Open() {
		return ErrSessionOpen
	}
	c, err := b.lookup(ctx, "edit", id)
	if err != nil {
		return err
	}
	if err := b.session.openForEdit(c); err != nil {
		return err
	}
	b.logger.DebugContext(ctx, "session opened", "state", b.session.State(), "contact", id)
	return nil
}

func (b *Book) Apply(ctx context.Context, p Patch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.session.apply(p, b.newID)
	if err != nil {
		return err
	}
	b.logger.DebugContext(ctx, "draft changed", "patch", fmt.Sprintf("%T", p))
	return nil
}

func (b *Book) AddPhoneEntry(ctx context.Context) error { return b.Apply(ctx, AddPhone{}) }

func (b *Book) RemovePhoneEntry(ctx context.Context, index int) error {
	return b.Apply(ctx, RemovePhone{Index: index})
}

// Submit commits the draft when it validates and closes the session.
// An invalid draft is reported through the returned [Errors], leaving the
// store and the session untouched. A store failure keeps the session open.
func (b *Book) Submit(ctx context.Context) (*ds.Contact, Errors, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.session.Open() {
		return nil, nil, ErrSessionClosed
	}

	if errs := Validate(&b.session.draft); !errs.Valid() {
		b.session.attempted = true
		b.metrics.rejected()
		b.logger.DebugContext(ctx, "draft rejected", "paths", errs.Paths())
		return nil, errs, nil
	}

	c := b.session.draft.contact(b.session.contactID)
	switch b.session.State() {
	case SessionCreating:
		if err := b.store.Add(ctx, c); err != nil {
			return nil, nil, fmt.Errorf("add contact %s: %w", c.ID, err)
		}
		b.metrics.added()
	case SessionEditing:
		if err := b.store.Update(ctx, c); err != nil {
			if errors.Is(err, ds.ErrObjectNotFound) {
				b.logger.WarnContext(ctx, "contact vanished during edit", "contact", c.ID)
			}
			return nil, nil, fmt.Errorf("update contact %s: %w", c.ID, err)
		}
		b.metrics.updated()
	}

	b.logger.DebugContext(ctx, "session submitted", "state", b.session.State(), "contact", c.ID)
	b.session.close()
	return c, nil, nil
}

// CancelEdit discards the draft.
func (b *Book) CancelEdit(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.session.Open() {
		return ErrSessionClosed
	}
	b.logger.DebugContext(ctx, "session cancelled", "state", b.session.State(), "contact", b.session.ContactID())
	b.session.close()
	return nil
}

func (b *Book) RequestDelete(ctx context.Context, id ds.ContactID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.lookup(ctx, "delete", id)
	if err != nil {
		return err
	}
	b.deletion.request(c)
	b.logger.DebugContext(ctx, "deletion requested", "contact", id)
	return nil
}

func (b *Book) CancelDelete(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.deletion.pending {
		return ErrNothingPending
	}
	b.logger.DebugContext(ctx, "deletion cancelled", "contact", b.deletion.target)
	b.deletion.clear()
	return nil
}

func (b *Book) ConfirmDelete(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.deletion.pending {
		return ErrNothingPending
	}
	id := b.deletion.target
	if err := b.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove contact %s: %w", id, err)
	}
	b.metrics.removed()
	b.logger.DebugContext(ctx, "deletion confirmed", "contact", id)
	b.deletion.clear()
	return nil
}

// lookup reports unknown ids without changing any state.
func (b *Book) lookup(ctx context.Context, intent string, id ds.ContactID) (*ds.Contact, error) {
	c, err := b.store.Get(ctx, id)
	if errors.Is(err, ds.ErrObjectNotFound) {
		b.logger.WarnContext(ctx, "unknown contact", "intent", intent, "contact", id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s contact %s: %w", intent, id, err)
	}
	return c, nil
}
