package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"burger-shop/models"
)

// Fault points reported to a MemoryStore fault hook.
const (
	OpCartLock          = "carts.lock"
	OpCartAdd           = "carts.add"
	OpCartUpdate        = "carts.update"
	OpCartDelete        = "carts.delete"
	OpCartDeleteLines   = "carts.delete_lines"
	OpCartClear         = "carts.clear"
	OpOrderCreate       = "orders.create"
	OpOrderCreateLines  = "orders.create_lines"
	OpOrderUpdateStatus = "orders.update_status"
)

// MemoryStore keeps everything in process. Cart, order and address rows are guarded by a
// per-user lock that a transaction holds from first touch until it ends, which gives the
// same serialization per user as row locks do in Postgres. Users never block each other.
type MemoryStore struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex

	users      map[int]models.User
	categories map[int]models.Category
	products   map[int]models.Product
	addresses  map[int]models.Address
	cartLines  map[int]models.CartLine
	orders     map[string]models.Order
	orderLines map[string][]models.OrderLine

	nextUser, nextProduct, nextAddress, nextCartLine, nextOrderLine int

	fault func(op string) error
	now   func() time.Time
}

type MemoryOption func(s *MemoryStore)

// WithFault installs a hook consulted before every mutating step; a non-nil error fails that step.
func WithFault(fn func(op string) error) MemoryOption {
	return func(s *MemoryStore) { s.fault = fn }
}

func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func WithCategories(categories ...models.Category) MemoryOption {
	return func(s *MemoryStore) {
		for _, c := range categories {
			s.categories[c.ID] = c
		}
	}
}

func WithProducts(products ...models.Product) MemoryOption {
	return func(s *MemoryStore) {
		for _, p := range products {
			s.products[p.ID] = p
			if p.ID > s.nextProduct {
				s.nextProduct = p.ID
			}
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		locks:      map[int]*sync.Mutex{},
		users:      map[int]models.User{},
		categories: map[int]models.Category{},
		products:   map[int]models.Product{},
		addresses:  map[int]models.Address{},
		cartLines:  map[int]models.CartLine{},
		orders:     map[string]models.Order{},
		orderLines: map[string][]models.OrderLine{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFault replaces the fault hook at runtime.
func (s *MemoryStore) SetFault(fn func(op string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = fn
}

func (s *MemoryStore) Carts() CartRepository        { return &memCarts{s: s} }
func (s *MemoryStore) Orders() OrderRepository      { return &memOrders{s: s} }
func (s *MemoryStore) Products() ProductRepository  { return &memProducts{s: s} }
func (s *MemoryStore) Users() UserRepository        { return &memUsers{s: s} }
func (s *MemoryStore) Addresses() AddressRepository { return &memAddresses{s: s} }

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.begin()
	return tx.run(fn)
}

// memTx is one unit of work: the user locks it holds and the undo log for rollback.
type memTx struct {
	s    *MemoryStore
	held map[int]*sync.Mutex
	undo []func()
	done bool
}

func (s *MemoryStore) begin() *memTx {
	return &memTx{s: s, held: map[int]*sync.Mutex{}}
}

func (tx *memTx) run(fn func(tx Store) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			tx.finish(true)
			panic(p)
		}
	}()
	err = fn(&memSession{tx: tx})
	tx.finish(err != nil)
	return err
}

func (tx *memTx) finish(rollback bool) {
	if tx.done {
		return
	}
	tx.done = true
	if rollback {
		tx.rollbackTo(0)
	}
	for _, l := range tx.held {
		l.Unlock()
	}
	tx.held = nil
}

func (tx *memTx) rollbackTo(mark int) {
	tx.s.mu.Lock()
	for i := len(tx.undo) - 1; i >= mark; i-- {
		tx.undo[i]()
	}
	tx.s.mu.Unlock()
	tx.undo = tx.undo[:mark]
}

// lockUser acquires the user's lock for the rest of the transaction. Reentrant within tx.
func (tx *memTx) lockUser(userID int) {
	if _, ok := tx.held[userID]; ok {
		return
	}
	tx.s.mu.Lock()
	l, ok := tx.s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		tx.s.locks[userID] = l
	}
	tx.s.mu.Unlock()

	l.Lock()
	tx.held[userID] = l
}

// check runs the fault hook for op. Callers must not hold s.mu.
func (tx *memTx) check(op string) error {
	tx.s.mu.Lock()
	fault := tx.s.fault
	tx.s.mu.Unlock()
	if fault == nil {
		return nil
	}
	if err := fault(op); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// record must be called with s.mu held.
func (tx *memTx) record(fn func()) {
	tx.undo = append(tx.undo, fn)
}

// autoTx runs fn inside tx when there is one, otherwise in a single-statement transaction.
func (s *MemoryStore) autoTx(ctx context.Context, tx *memTx, fn func(tx *memTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx != nil {
		return fn(tx)
	}
	own := s.begin()
	err := fn(own)
	own.finish(err != nil)
	return err
}

// memSession is the Store handed to WithTx callbacks.
type memSession struct {
	tx *memTx
}

func (m *memSession) Carts() CartRepository        { return &memCarts{s: m.tx.s, tx: m.tx} }
func (m *memSession) Orders() OrderRepository      { return &memOrders{s: m.tx.s, tx: m.tx} }
func (m *memSession) Products() ProductRepository  { return &memProducts{s: m.tx.s, tx: m.tx} }
func (m *memSession) Users() UserRepository        { return &memUsers{s: m.tx.s, tx: m.tx} }
func (m *memSession) Addresses() AddressRepository { return &memAddresses{s: m.tx.s, tx: m.tx} }

// WithTx on a session behaves like a savepoint.
func (m *memSession) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mark := len(m.tx.undo)
	if err := fn(m); err != nil {
		m.tx.rollbackTo(mark)
		return err
	}
	return nil
}

type memCarts struct {
	s  *MemoryStore
	tx *memTx
}

func (r *memCarts) List(ctx context.Context, userID int) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		lines = r.s.userLines(userID)
		return nil
	})
	return lines, err
}

func (r *memCarts) LockForCheckout(ctx context.Context, userID int) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		if err := tx.check(OpCartLock); err != nil {
			return err
		}
		lines = r.s.userLines(userID)
		return nil
	})
	return lines, err
}

func (s *MemoryStore) userLines(userID int) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := []models.CartLine{}
	for _, l := range s.cartLines {
		if l.UserID != userID {
			continue
		}
		if p, ok := s.products[l.ProductID]; ok {
			product := p
			l.Product = &product
		}
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

func (r *memCarts) AddOrIncrement(ctx context.Context, line models.CartLine) (*models.CartLine, error) {
	var out models.CartLine
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(line.UserID)
		if err := tx.check(OpCartAdd); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := s.products[line.ProductID]; !ok {
			return fmt.Errorf("upsert cart line: product %d: %w", line.ProductID, models.ErrNotFound)
		}

		now := s.now()
		for id, existing := range s.cartLines {
			if existing.UserID == line.UserID && existing.ProductID == line.ProductID {
				prev := existing
				existing.Quantity += line.Quantity
				existing.UpdatedAt = now
				s.cartLines[id] = existing
				tx.record(func() { s.cartLines[id] = prev })
				out = existing
				return nil
			}
		}

		s.nextCartLine++
		line.ID = s.nextCartLine
		line.Product = nil
		line.Options = nil
		line.CreatedAt = now
		line.UpdatedAt = now
		s.cartLines[line.ID] = line
		id := line.ID
		tx.record(func() { delete(s.cartLines, id) })
		out = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memCarts) UpdateQuantity(ctx context.Context, userID, lineID, quantity int) (*models.CartLine, error) {
	var out models.CartLine
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		if err := tx.check(OpCartUpdate); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		existing, err := s.ownedLine(userID, lineID)
		if err != nil {
			return err
		}
		prev := existing
		existing.Quantity = quantity
		existing.UpdatedAt = s.now()
		s.cartLines[lineID] = existing
		tx.record(func() { s.cartLines[lineID] = prev })
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memCarts) Delete(ctx context.Context, userID, lineID int) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		if err := tx.check(OpCartDelete); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		existing, err := s.ownedLine(userID, lineID)
		if err != nil {
			return err
		}
		delete(s.cartLines, lineID)
		tx.record(func() { s.cartLines[lineID] = existing })
		return nil
	})
}

func (r *memCarts) DeleteLines(ctx context.Context, userID int, lineIDs []int) (int64, error) {
	var n int64
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		if err := tx.check(OpCartDeleteLines); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, id := range lineIDs {
			l, ok := s.cartLines[id]
			if !ok || l.UserID != userID {
				continue
			}
			removed, lineID := l, id
			delete(s.cartLines, id)
			tx.record(func() { s.cartLines[lineID] = removed })
			n++
		}
		return nil
	})
	return n, err
}

func (r *memCarts) Clear(ctx context.Context, userID int) (int64, error) {
	var n int64
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		if err := tx.check(OpCartClear); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		for id, l := range s.cartLines {
			if l.UserID != userID {
				continue
			}
			removed := l
			lineID := id
			delete(s.cartLines, id)
			tx.record(func() { s.cartLines[lineID] = removed })
			n++
		}
		return nil
	})
	return n, err
}

// ownedLine must be called with s.mu held.
func (s *MemoryStore) ownedLine(userID, lineID int) (models.CartLine, error) {
	l, ok := s.cartLines[lineID]
	if !ok {
		return models.CartLine{}, models.ErrNotFound
	}
	if l.UserID != userID {
		return models.CartLine{}, models.ErrForbidden
	}
	return l, nil
}

type memOrders struct {
	s  *MemoryStore
	tx *memTx
}

func (r *memOrders) Create(ctx context.Context, o *models.Order) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(o.UserID)
		if err := tx.check(OpOrderCreate); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.orders[o.ID]; exists {
			return fmt.Errorf("insert order: duplicate id %q", o.ID)
		}
		stored := *o
		stored.Items = nil
		stored.PricingWarnings = nil
		s.orders[o.ID] = stored
		id := o.ID
		tx.record(func() { delete(s.orders, id) })
		return nil
	})
}

func (r *memOrders) CreateLines(ctx context.Context, orderID string, lines []models.OrderLine) error {
	owner, ok := r.s.orderOwner(orderID)
	if !ok {
		return fmt.Errorf("insert order line: order %q: %w", orderID, models.ErrNotFound)
	}
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(owner)
		if err := tx.check(OpOrderCreateLines); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		prev, hadLines := s.orderLines[orderID]
		stored := append([]models.OrderLine(nil), prev...)
		for i := range lines {
			s.nextOrderLine++
			lines[i].ID = s.nextOrderLine
			lines[i].OrderID = orderID
			l := lines[i]
			l.Options = nil
			stored = append(stored, l)
		}
		s.orderLines[orderID] = stored
		tx.record(func() {
			if hadLines {
				s.orderLines[orderID] = prev
			} else {
				delete(s.orderLines, orderID)
			}
		})
		return nil
	})
}

func (s *MemoryStore) orderOwner(orderID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	return o.UserID, ok
}

// orderCopy must be called with s.mu held.
func (s *MemoryStore) orderCopy(orderID string) (models.Order, bool) {
	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, false
	}
	o.Items = append([]models.OrderLine{}, s.orderLines[orderID]...)
	return o, true
}

func (r *memOrders) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	owner, ok := r.s.orderOwner(orderID)
	if !ok {
		return nil, models.ErrNotFound
	}
	return r.FindForUser(ctx, owner, orderID)
}

func (r *memOrders) FindForUser(ctx context.Context, userID int, orderID string) (*models.Order, error) {
	var out models.Order
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		o, ok := s.orderCopy(orderID)
		if !ok {
			return models.ErrNotFound
		}
		if o.UserID != userID {
			return models.ErrForbidden
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memOrders) ListByUser(ctx context.Context, userID int) ([]models.Order, error) {
	var orders []models.Order
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)
		orders = r.s.ordersOf(userID)
		return nil
	})
	return orders, err
}

// ordersOf returns the user's orders, newest first.
func (s *MemoryStore) ordersOf(userID int) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := []models.Order{}
	for id, o := range s.orders {
		if o.UserID != userID {
			continue
		}
		full, _ := s.orderCopy(id)
		orders = append(orders, full)
	}
	sortOrders(orders)
	return orders
}

func sortOrders(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// ListAll reads each owner's orders under that owner's lock, one owner at a time.
func (r *memOrders) ListAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s := r.s
	s.mu.Lock()
	owners := map[int]bool{}
	for _, o := range s.orders {
		owners[o.UserID] = true
	}
	s.mu.Unlock()

	all := []models.Order{}
	for owner := range owners {
		userOrders, err := r.ListByUser(ctx, owner)
		if err != nil {
			return nil, 0, err
		}
		for _, o := range userOrders {
			if filter.Status == "" || o.Status == filter.Status {
				all = append(all, o)
			}
		}
	}
	sortOrders(all)

	total := len(all)
	start := (filter.Page - 1) * filter.Limit
	if start < 0 || start >= total {
		return []models.Order{}, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *memOrders) UpdateStatus(ctx context.Context, orderID, status string) error {
	owner, ok := r.s.orderOwner(orderID)
	if !ok {
		return models.ErrNotFound
	}
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(owner)
		if err := tx.check(OpOrderUpdateStatus); err != nil {
			return err
		}

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		o, ok := s.orders[orderID]
		if !ok {
			return models.ErrNotFound
		}
		prev := o
		o.Status = status
		o.UpdatedAt = s.now()
		s.orders[orderID] = o
		tx.record(func() { s.orders[orderID] = prev })
		return nil
	})
}

type memProducts struct {
	s  *MemoryStore
	tx *memTx
}

func (r *memProducts) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *memProducts) List(ctx context.Context, categoryID *int) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	products := []models.Product{}
	for _, p := range s.products {
		if !p.IsActive || (categoryID != nil && p.CategoryID != *categoryID) {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *memProducts) FindByID(ctx context.Context, id int) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *memProducts) Create(ctx context.Context, p *models.Product) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		s.nextProduct++
		p.ID = s.nextProduct
		p.IsActive = true
		p.CreatedAt = s.now()
		p.UpdatedAt = p.CreatedAt
		s.products[p.ID] = *p
		id := p.ID
		tx.record(func() { delete(s.products, id) })
		return nil
	})
}

func (r *memProducts) Update(ctx context.Context, p *models.Product) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		prev, ok := s.products[p.ID]
		if !ok {
			return models.ErrNotFound
		}
		p.UpdatedAt = s.now()
		s.products[p.ID] = *p
		tx.record(func() { s.products[prev.ID] = prev })
		return nil
	})
}

func (r *memProducts) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sold := map[int]int{}
	for _, lines := range s.orderLines {
		for _, l := range lines {
			sold[l.ProductID] += l.Quantity
		}
	}

	products := []models.Product{}
	for id := range sold {
		if p, ok := s.products[id]; ok && p.IsActive {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		if sold[products[i].ID] == sold[products[j].ID] {
			return products[i].ID < products[j].ID
		}
		return sold[products[i].ID] > sold[products[j].ID]
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

type memUsers struct {
	s  *MemoryStore
	tx *memTx
}

func (r *memUsers) Create(ctx context.Context, user *models.User) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, u := range s.users {
			if u.Email == user.Email {
				return models.ErrEmailTaken
			}
		}
		s.nextUser++
		user.ID = s.nextUser
		user.CreatedAt = s.now()
		user.UpdatedAt = user.CreatedAt
		s.users[user.ID] = *user
		id := user.ID
		tx.record(func() { delete(s.users, id) })
		return nil
	})
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memUsers) FindByID(ctx context.Context, id int) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		prev, ok := s.users[user.ID]
		if !ok {
			return models.ErrNotFound
		}
		next := prev
		next.Username = user.Username
		next.Phone = user.Phone
		next.UpdatedAt = s.now()
		s.users[user.ID] = next
		*user = next
		tx.record(func() { s.users[prev.ID] = prev })
		return nil
	})
}

type memAddresses struct {
	s  *MemoryStore
	tx *memTx
}

func (r *memAddresses) ListByUser(ctx context.Context, userID int) ([]models.Address, error) {
	var out []models.Address
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		out = []models.Address{}
		for _, a := range s.addresses {
			if a.UserID == userID {
				out = append(out, a)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].IsDefault != out[j].IsDefault {
				return out[i].IsDefault
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	return out, err
}

func (r *memAddresses) FindForUser(ctx context.Context, userID, id int) (*models.Address, error) {
	var out models.Address
	err := r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		a, ok := s.addresses[id]
		if !ok {
			return models.ErrNotFound
		}
		if a.UserID != userID {
			return models.ErrForbidden
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memAddresses) Create(ctx context.Context, a *models.Address) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(a.UserID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		s.nextAddress++
		a.ID = s.nextAddress
		a.CreatedAt = s.now()
		a.UpdatedAt = a.CreatedAt
		s.addresses[a.ID] = *a
		id := a.ID
		tx.record(func() { delete(s.addresses, id) })
		return nil
	})
}

func (r *memAddresses) Update(ctx context.Context, a *models.Address) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(a.UserID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		prev, ok := s.addresses[a.ID]
		if !ok || prev.UserID != a.UserID {
			return models.ErrNotFound
		}
		a.CreatedAt = prev.CreatedAt
		a.UpdatedAt = s.now()
		s.addresses[a.ID] = *a
		tx.record(func() { s.addresses[prev.ID] = prev })
		return nil
	})
}

func (r *memAddresses) Delete(ctx context.Context, userID, id int) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		prev, ok := s.addresses[id]
		if !ok || prev.UserID != userID {
			return models.ErrNotFound
		}
		delete(s.addresses, id)
		tx.record(func() { s.addresses[id] = prev })
		return nil
	})
}

func (r *memAddresses) SetDefault(ctx context.Context, userID, id int) error {
	return r.s.autoTx(ctx, r.tx, func(tx *memTx) error {
		tx.lockUser(userID)

		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()

		touched := 0
		for aid, a := range s.addresses {
			if a.UserID != userID {
				continue
			}
			prev := a
			a.IsDefault = aid == id
			s.addresses[aid] = a
			tx.record(func() { s.addresses[prev.ID] = prev })
			touched++
		}
		if touched == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
