package library

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// TxState tracks a mutation through its optimistic lifecycle.
type TxState string

const (
	TxPending    TxState = "pending"
	TxCommitted  TxState = "committed"
	TxRolledBack TxState = "rolled-back"
)

// Notification describes the outcome of one mutation. Rolled-back
// notifications are what the UI surfaces as non-blocking toasts.
type Notification struct {
	Op       string
	EntityID string
	State    TxState
	Err      error
}

// Notifier receives mutation outcomes. Implementations must not call
// back into the store.
type Notifier interface {
	Notify(n Notification)
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) {}

// Snapshot is a point-in-time copy of the store contents, safe to read
// without holding any lock.
type Snapshot struct {
	Items []MediaItem
	Lists []CustomList
}

// tempIDPrefix namespaces optimistic ids so they can never collide
// with server-assigned uuids.
const tempIDPrefix = "tmp-"

// Store is the single authoritative in-memory copy of the user's items
// and lists. All mutations apply optimistically, propagate to the
// gateway, and either commit the server's authoritative record or roll
// the optimistic change back.
//
// Out-of-order completions are resolved last-write-wins per id, with
// delete terminal: once an id is tombstoned, late update completions
// for it are dropped silently.
type Store struct {
	mu       sync.Mutex
	gateway  Gateway
	notifier Notifier

	items    map[string]MediaItem
	lists    map[string]CustomList
	versions map[string]uint64
	deleted  map[string]struct{}

	listeners map[int]func(Snapshot)
	nextSub   int
}

type StoreOption func(*Store)

func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) { s.notifier = n }
}

func NewStore(gateway Gateway, opts ...StoreOption) *Store {
	s := &Store{
		gateway:   gateway,
		notifier:  noopNotifier{},
		items:     make(map[string]MediaItem),
		lists:     make(map[string]CustomList),
		versions:  make(map[string]uint64),
		deleted:   make(map[string]struct{}),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches items and lists in parallel and replaces the current
// state. An unauthorized response yields an empty collection rather
// than an error, so an anonymous session sees an empty library.
func (s *Store) Load(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		items    []MediaItem
		lists    []CustomList
		itemsErr error
		listsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, itemsErr = s.gateway.FetchItems(ctx)
	}()
	go func() {
		defer wg.Done()
		lists, listsErr = s.gateway.FetchLists(ctx)
	}()
	wg.Wait()

	if itemsErr == ErrUnauthorized || listsErr == ErrUnauthorized {
		s.mu.Lock()
		s.items = make(map[string]MediaItem)
		s.lists = make(map[string]CustomList)
		s.versions = make(map[string]uint64)
		s.deleted = make(map[string]struct{})
		s.mu.Unlock()
		s.broadcast()
		return nil
	}
	if itemsErr != nil {
		return itemsErr
	}
	if listsErr != nil {
		return listsErr
	}

	s.mu.Lock()
	s.items = make(map[string]MediaItem, len(items))
	for _, item := range items {
		s.items[item.ID] = item
	}
	s.lists = make(map[string]CustomList, len(lists))
	for _, list := range lists {
		s.lists[list.ID] = list
	}
	s.versions = make(map[string]uint64)
	s.deleted = make(map[string]struct{})
	s.mu.Unlock()

	s.broadcast()
	return nil
}

// Subscribe registers a listener invoked with a fresh snapshot after
// every committed or rolled-back change. The returned function removes
// the listener.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// GetSnapshot returns a copy of the current items and lists.
func (s *Store) GetSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Item returns one entry by id.
func (s *Store) Item(id string) (MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

// List returns one custom list by id.
func (s *Store) List(id string) (CustomList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[id]
	return list, ok
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Items: make([]MediaItem, 0, len(s.items)),
		Lists: make([]CustomList, 0, len(s.lists)),
	}
	for _, item := range s.items {
		snap.Items = append(snap.Items, item)
	}
	for _, list := range s.lists {
		snap.Lists = append(snap.Lists, list)
	}
	return snap
}

func (s *Store) broadcast() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) notify(op, entityID string, state TxState, err error) {
	s.notifier.Notify(Notification{Op: op, EntityID: entityID, State: state, Err: err})
}

// Create inserts the item optimistically under a temporary id, sends
// it to the gateway, and replaces the temporary entry with the server's
// authoritative record on success.
func (s *Store) Create(ctx context.Context, item MediaItem) (MediaItem, error) {
	tempID := tempIDPrefix + uuid.New().String()

	s.mu.Lock()
	optimistic := item
	optimistic.ID = tempID
	s.items[tempID] = optimistic
	s.mu.Unlock()
	s.notify("create", tempID, TxPending, nil)
	s.broadcast()

	toSend := item
	toSend.ID = ""
	created, err := s.gateway.CreateItem(ctx, toSend)

	s.mu.Lock()
	delete(s.items, tempID)
	if err == nil {
		s.items[created.ID] = created
	}
	s.mu.Unlock()

	if err != nil {
		s.notify("create", tempID, TxRolledBack, err)
		s.broadcast()
		return MediaItem{}, err
	}

	s.notify("create", created.ID, TxCommitted, nil)
	s.broadcast()
	return created, nil
}

// Update applies only the fields the patch sets, locally then remotely.
// If the remote write fails, exactly those fields are restored to their
// prior values, so a concurrent update to different fields of the same
// item is never clobbered. Updates against a deleted id are silent
// no-ops.
func (s *Store) Update(ctx context.Context, id string, patch ItemPatch) error {
	s.mu.Lock()
	if _, gone := s.deleted[id]; gone {
		s.mu.Unlock()
		return nil
	}
	prior, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	inverse := patch.InverseFor(prior)
	updated := prior
	patch.Apply(&updated)
	s.items[id] = updated
	s.versions[id]++
	myVersion := s.versions[id]
	s.mu.Unlock()
	s.notify("update", id, TxPending, nil)
	s.broadcast()

	authoritative, err := s.gateway.UpdateItem(ctx, id, patch)

	s.mu.Lock()
	if _, gone := s.deleted[id]; gone {
		// deleted while in flight; delete is terminal
		s.mu.Unlock()
		return nil
	}

	switch {
	case err == nil:
		// adopt the server record only if no later local write raced us
		if s.versions[id] == myVersion {
			s.items[id] = authoritative
		}
		s.mu.Unlock()
		s.notify("update", id, TxCommitted, nil)
		s.broadcast()
		return nil

	case err == ErrNotFound:
		// deleted on the server; converge by dropping it locally
		delete(s.items, id)
		s.deleted[id] = struct{}{}
		s.mu.Unlock()
		s.notify("update", id, TxRolledBack, err)
		s.broadcast()
		return nil

	default:
		if current, still := s.items[id]; still {
			inverse.Apply(&current)
			s.items[id] = current
		}
		s.mu.Unlock()
		s.notify("update", id, TxRolledBack, err)
		s.broadcast()
		return err
	}
}

// Delete removes the item locally and remotely. Deleting an id that is
// already gone is a no-op, and the tombstone makes late completions of
// concurrent updates for the same id harmless.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, gone := s.deleted[id]; gone {
		s.mu.Unlock()
		return nil
	}
	prior, existed := s.items[id]
	delete(s.items, id)
	s.deleted[id] = struct{}{}
	s.mu.Unlock()

	if !existed {
		return nil
	}
	s.notify("delete", id, TxPending, nil)
	s.broadcast()

	err := s.gateway.DeleteItem(ctx, id)
	if err != nil && err != ErrNotFound {
		s.mu.Lock()
		s.items[id] = prior
		delete(s.deleted, id)
		s.mu.Unlock()
		s.notify("delete", id, TxRolledBack, err)
		s.broadcast()
		return err
	}

	s.notify("delete", id, TxCommitted, nil)
	s.broadcast()
	return nil
}

// ToggleFavorite flips the favorite flag through Update.
func (s *Store) ToggleFavorite(ctx context.Context, id string) error {
	s.mu.Lock()
	item, ok := s.items[id]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	next := !item.IsFavorite
	return s.Update(ctx, id, ItemPatch{IsFavorite: &next})
}

// AddList creates a custom list.
func (s *Store) AddList(ctx context.Context, list CustomList) (CustomList, error) {
	tempID := tempIDPrefix + uuid.New().String()

	s.mu.Lock()
	optimistic := list
	optimistic.ID = tempID
	optimistic.ItemIDs = emptyIfNil(optimistic.ItemIDs)
	s.lists[tempID] = optimistic
	s.mu.Unlock()
	s.notify("add-list", tempID, TxPending, nil)
	s.broadcast()

	toSend := list
	toSend.ID = ""
	created, err := s.gateway.CreateList(ctx, toSend)

	s.mu.Lock()
	delete(s.lists, tempID)
	if err == nil {
		s.lists[created.ID] = created
	}
	s.mu.Unlock()

	if err != nil {
		s.notify("add-list", tempID, TxRolledBack, err)
		s.broadcast()
		return CustomList{}, err
	}

	s.notify("add-list", created.ID, TxCommitted, nil)
	s.broadcast()
	return created, nil
}

// UpdateList applies a field-level patch to a list, with the same
// rollback discipline as item updates.
func (s *Store) UpdateList(ctx context.Context, id string, patch ListPatch) error {
	s.mu.Lock()
	prior, ok := s.lists[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	inverse := patch.inverseFor(prior)
	updated := prior
	patch.Apply(&updated)
	s.lists[id] = updated
	s.mu.Unlock()
	s.notify("update-list", id, TxPending, nil)
	s.broadcast()

	authoritative, err := s.gateway.UpdateList(ctx, id, patch)

	s.mu.Lock()
	switch {
	case err == nil:
		if current, still := s.lists[id]; still {
			// keep the locally-tracked membership; the server record
			// is authoritative for the patched fields and timestamps
			authoritative.ItemIDs = current.ItemIDs
			s.lists[id] = authoritative
		}
		s.mu.Unlock()
		s.notify("update-list", id, TxCommitted, nil)
		s.broadcast()
		return nil

	case err == ErrNotFound:
		delete(s.lists, id)
		s.mu.Unlock()
		s.notify("update-list", id, TxRolledBack, err)
		s.broadcast()
		return nil

	default:
		if current, still := s.lists[id]; still {
			inverse.Apply(&current)
			s.lists[id] = current
		}
		s.mu.Unlock()
		s.notify("update-list", id, TxRolledBack, err)
		s.broadcast()
		return err
	}
}

// DeleteList removes a list. Items keep existing; only membership goes.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	s.mu.Lock()
	prior, existed := s.lists[id]
	if !existed {
		s.mu.Unlock()
		return nil
	}
	delete(s.lists, id)
	for itemID, item := range s.items {
		item.CustomLists = removeString(item.CustomLists, id)
		s.items[itemID] = item
	}
	s.mu.Unlock()
	s.notify("delete-list", id, TxPending, nil)
	s.broadcast()

	err := s.gateway.DeleteList(ctx, id)
	if err != nil && err != ErrNotFound {
		s.mu.Lock()
		s.lists[id] = prior
		for _, itemID := range prior.ItemIDs {
			if item, ok := s.items[itemID]; ok {
				item.CustomLists = appendUnique(item.CustomLists, id)
				s.items[itemID] = item
			}
		}
		s.mu.Unlock()
		s.notify("delete-list", id, TxRolledBack, err)
		s.broadcast()
		return err
	}

	s.notify("delete-list", id, TxCommitted, nil)
	s.broadcast()
	return nil
}

// AddItemToList records membership on both sides of the relation.
// Adding an item already in the list is a no-op.
func (s *Store) AddItemToList(ctx context.Context, listID, mediaID string) error {
	s.mu.Lock()
	list, ok := s.lists[listID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if containsString(list.ItemIDs, mediaID) {
		s.mu.Unlock()
		return nil
	}
	list.ItemIDs = appendUnique(list.ItemIDs, mediaID)
	s.lists[listID] = list
	if item, exists := s.items[mediaID]; exists {
		item.CustomLists = appendUnique(item.CustomLists, listID)
		s.items[mediaID] = item
	}
	s.mu.Unlock()
	s.notify("add-list-item", listID, TxPending, nil)
	s.broadcast()

	err := s.gateway.AddListItem(ctx, listID, mediaID)
	if err != nil && err != ErrNotFound {
		s.mu.Lock()
		if list, still := s.lists[listID]; still {
			list.ItemIDs = removeString(list.ItemIDs, mediaID)
			s.lists[listID] = list
		}
		if item, exists := s.items[mediaID]; exists {
			item.CustomLists = removeString(item.CustomLists, listID)
			s.items[mediaID] = item
		}
		s.mu.Unlock()
		s.notify("add-list-item", listID, TxRolledBack, err)
		s.broadcast()
		return err
	}

	s.notify("add-list-item", listID, TxCommitted, nil)
	s.broadcast()
	return nil
}

// RemoveItemFromList is the idempotent inverse of AddItemToList.
func (s *Store) RemoveItemFromList(ctx context.Context, listID, mediaID string) error {
	s.mu.Lock()
	list, ok := s.lists[listID]
	if !ok || !containsString(list.ItemIDs, mediaID) {
		s.mu.Unlock()
		return nil
	}
	list.ItemIDs = removeString(list.ItemIDs, mediaID)
	s.lists[listID] = list
	if item, exists := s.items[mediaID]; exists {
		item.CustomLists = removeString(item.CustomLists, listID)
		s.items[mediaID] = item
	}
	s.mu.Unlock()
	s.notify("remove-list-item", listID, TxPending, nil)
	s.broadcast()

	err := s.gateway.RemoveListItem(ctx, listID, mediaID)
	if err != nil && err != ErrNotFound {
		s.mu.Lock()
		if list, still := s.lists[listID]; still {
			list.ItemIDs = appendUnique(list.ItemIDs, mediaID)
			s.lists[listID] = list
		}
		if item, exists := s.items[mediaID]; exists {
			item.CustomLists = appendUnique(item.CustomLists, listID)
			s.items[mediaID] = item
		}
		s.mu.Unlock()
		s.notify("remove-list-item", listID, TxRolledBack, err)
		s.broadcast()
		return err
	}

	s.notify("remove-list-item", listID, TxCommitted, nil)
	s.broadcast()
	return nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func appendUnique(ss []string, s string) []string {
	if containsString(ss, s) {
		return ss
	}
	out := make([]string, len(ss), len(ss)+1)
	copy(out, ss)
	return append(out, s)
}

func removeString(ss []string, s string) []string {
	out := make([]string, 0, len(ss))
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
