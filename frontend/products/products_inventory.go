package products

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"warehouse/models"
	"warehouse/pkg/logger"
)

// ProductStore is the backend that owns products.
type ProductStore interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Inventory is one view session: the cached product list plus its ViewState.
//
// Mutations are two-phase. Create, Update and Delete call the backend and
// patch the local list on success (phase one). Reconcile replaces the list
// with the backend's (phase two). A failed mutation never touches the list;
// a failed Reconcile keeps whatever the list holds and marks it stale.
//
// Backend calls are made without holding mu. The list slice is never
// modified in place, so snapshots may share it.
//
// gen counts successful changes. A list fetch only joins fetches started at
// the same gen, and its result is dropped if gen moved while it ran.
type Inventory struct {
	store   ProductStore
	log     *logger.Logger
	refresh singleflight.Group

	mu       sync.Mutex
	products []models.Product
	state    ViewState
	loaded   bool
	stale    bool
	gen      uint64
}

// NewInventory creates an empty, not yet loaded inventory.
func NewInventory(store ProductStore, log *logger.Logger) *Inventory {
	if log == nil {
		log = logger.Default()
	}
	return &Inventory{
		store: store,
		log:   log.WithComponent("inventory"),
		state: NewViewState(),
	}
}

// Snapshot is a consistent read of an Inventory.
type Snapshot struct {
	State   ViewState
	Listing Listing
	Loaded  bool
	Stale   bool
}

// Snapshot derives the current listing.
func (inv *Inventory) Snapshot() Snapshot {
	inv.mu.Lock()
	products, state, loaded, stale := inv.products, inv.state, inv.loaded, inv.stale
	inv.mu.Unlock()
	return Snapshot{State: state, Listing: Derive(products, state), Loaded: loaded, Stale: stale}
}

// TakeSnapshot is Snapshot followed by clearing the notice, so a banner is
// rendered once.
func (inv *Inventory) TakeSnapshot() Snapshot {
	inv.mu.Lock()
	products, state, loaded, stale := inv.products, inv.state, inv.loaded, inv.stale
	inv.state = Reduce(inv.state, ClearNotice{})
	inv.mu.Unlock()
	return Snapshot{State: state, Listing: Derive(products, state), Loaded: loaded, Stale: stale}
}

// Dispatch applies a to the view state and returns the new state.
func (inv *Inventory) Dispatch(a Action) ViewState {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state = Reduce(inv.state, a)
	return inv.state
}

// Products returns the cached list. Callers must not modify it.
func (inv *Inventory) Products() []models.Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.products
}

// Find looks a product up in the cached list.
func (inv *Inventory) Find(id int64) (models.Product, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, p := range inv.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// EnsureLoaded performs the initial fetch until one succeeds.
func (inv *Inventory) EnsureLoaded(ctx context.Context) error {
	inv.mu.Lock()
	loaded := inv.loaded
	inv.mu.Unlock()
	if loaded {
		return nil
	}
	if err := inv.Reconcile(ctx); err != nil {
		inv.notifyError(ctx, "Could not load products", err)
		return err
	}
	return nil
}

// Reconcile replaces the cached list with the backend's. Concurrent calls
// made with no change in between share one backend request, which runs
// detached from the caller's cancellation.
func (inv *Inventory) Reconcile(ctx context.Context) error {
	inv.mu.Lock()
	gen := inv.gen
	inv.mu.Unlock()

	_, err, _ := inv.refresh.Do("list:"+strconv.FormatUint(gen, 10), func() (any, error) {
		items, err := inv.store.ListAll(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		inv.mu.Lock()
		defer inv.mu.Unlock()
		if inv.gen != gen {
			// Read before a change landed; the change's own refetch applies.
			return nil, nil
		}
		inv.products = items
		inv.loaded = true
		inv.stale = false
		return nil, nil
	})
	if err != nil {
		inv.mu.Lock()
		inv.stale = inv.loaded
		inv.mu.Unlock()
		inv.log.WithContext(ctx).Errorw("reconcile product list failed", "err", err)
		return err
	}
	return nil
}

// Create adds p in the backend and prepends the created record locally.
func (inv *Inventory) Create(ctx context.Context, p models.Product) (models.Product, error) {
	created, err := inv.store.Create(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	inv.mu.Lock()
	inv.products = append([]models.Product{created}, inv.products...)
	inv.gen++
	inv.mu.Unlock()
	return created, nil
}

// Update saves p in the backend and replaces the local entry with the same id.
func (inv *Inventory) Update(ctx context.Context, p models.Product) (models.Product, error) {
	updated, err := inv.store.Update(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	inv.mu.Lock()
	if i := slices.IndexFunc(inv.products, func(item models.Product) bool { return item.ID == updated.ID }); i >= 0 {
		next := slices.Clone(inv.products)
		next[i] = updated
		inv.products = next
	}
	inv.gen++
	inv.mu.Unlock()
	return updated, nil
}

// Delete removes the product in the backend only; the local list changes on
// the next Reconcile.
func (inv *Inventory) Delete(ctx context.Context, id int64) error {
	if err := inv.store.Delete(ctx, id); err != nil {
		return err
	}
	inv.mu.Lock()
	inv.gen++
	inv.mu.Unlock()
	return nil
}

// AddProduct creates p and then reconciles. On failure the add dialog stays
// open and an error notice is set.
func (inv *Inventory) AddProduct(ctx context.Context, p models.Product) error {
	created, err := inv.Create(ctx, p)
	if err != nil {
		inv.notifyError(ctx, "Could not add product", err)
		return err
	}
	inv.Dispatch(CloseModal{})
	inv.reconcileAfter(ctx, "Product added: "+displayName(created))
	return nil
}

// EditProduct updates p and then reconciles.
func (inv *Inventory) EditProduct(ctx context.Context, p models.Product) error {
	updated, err := inv.Update(ctx, p)
	if err != nil {
		inv.notifyError(ctx, "Could not save product", err)
		return err
	}
	inv.Dispatch(CloseModal{})
	inv.reconcileAfter(ctx, "Product updated: "+displayName(updated))
	return nil
}

// DeleteProduct closes the confirmation, deletes the product and then reconciles.
func (inv *Inventory) DeleteProduct(ctx context.Context, p models.Product) error {
	inv.Dispatch(CloseModal{})
	if err := inv.Delete(ctx, p.ID); err != nil {
		inv.notifyError(ctx, "Could not delete product", err)
		return err
	}
	inv.reconcileAfter(ctx, "Product deleted: "+displayName(p))
	return nil
}

// Refresh is a user-requested reconcile.
func (inv *Inventory) Refresh(ctx context.Context) error {
	if err := inv.Reconcile(ctx); err != nil {
		inv.notifyError(ctx, "Could not refresh products", err)
		return err
	}
	inv.Dispatch(SetNotice{Notice{Level: NoticeInfo, Message: "Product list refreshed"}})
	return nil
}

// reconcileAfter runs phase two of a successful mutation. The optimistic
// list is kept when the refresh fails.
func (inv *Inventory) reconcileAfter(ctx context.Context, success string) {
	if err := inv.Reconcile(ctx); err != nil {
		inv.notifyError(ctx, success+", but the list could not be refreshed", err)
		return
	}
	inv.Dispatch(SetNotice{Notice{Level: NoticeInfo, Message: success}})
}

func (inv *Inventory) notifyError(ctx context.Context, msg string, err error) {
	inv.log.WithContext(ctx).Warnw(msg, "err", err)
	inv.Dispatch(SetNotice{Notice{Level: NoticeError, Message: fmt.Sprintf("%s: %v", msg, err)}})
}

func displayName(p models.Product) string {
	if name := p.NameOrEmpty(); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", p.ID)
}
