package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error

	LastLoginTouched []int64
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless email already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := user
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile applies non-nil fields to the stored user.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

// TouchLastLogin records the invocation.
func (s *UserRepositoryStub) TouchLastLogin(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.LastLoginTouched = append(s.LastLoginTouched, id)
	if user, ok := s.ByID[id]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

// ProductRepositoryStub keeps listings in-memory. Reserve and Release are
// mutex-guarded so concurrent purchase tests observe the same all-or-nothing
// behaviour as the conditional database write.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	Products map[int64]*model.Product
	Next     int64

	CreateErr   error
	GetErr      error
	ReserveErr  error
	MarkSoldErr error
	ReleaseErr  error

	ReleaseCalls  []int64
	MarkSoldCalls []int64
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Seed stores a listing directly, assigning an identifier when absent.
func (s *ProductRepositoryStub) Seed(product model.Product) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == 0 {
		product.ID = s.Next
		s.Next++
	} else if product.ID >= s.Next {
		s.Next = product.ID + 1
	}
	stored := product
	s.Products[stored.ID] = &stored
	return &stored
}

// Create stores a new listing.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	return s.Seed(product), nil
}

// GetByID returns a copy of the stored listing.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copy := *product
	return &copy, nil
}

// ListBySeller filters stored listings by seller.
func (s *ProductRepositoryStub) ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Product
	for _, p := range s.Products {
		if p.SellerID == sellerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ListByStatus filters stored listings by status; nil returns everything.
func (s *ProductRepositoryStub) ListByStatus(ctx context.Context, status *model.ProductStatus) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Product
	for _, p := range s.Products {
		if status == nil || p.Status == *status {
			result = append(result, *p)
		}
	}
	return result, nil
}

// Reserve decrements quantity when the listing is approved and has enough
// units, mirroring the conditional write semantics of the real repository.
func (s *ProductRepositoryStub) Reserve(ctx context.Context, productID int64, quantity int) (*model.Product, error) {
	if s.ReserveErr != nil {
		return nil, s.ReserveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok || product.Status != model.ProductStatusApproved || product.Quantity < quantity {
		return nil, domainErrors.ErrReservationLost
	}
	product.Quantity -= quantity
	copy := *product
	return &copy, nil
}

// MarkSold flips a depleted approved listing to sold.
func (s *ProductRepositoryStub) MarkSold(ctx context.Context, productID int64) (*model.Product, error) {
	s.mu.Lock()
	s.MarkSoldCalls = append(s.MarkSoldCalls, productID)
	s.mu.Unlock()
	if s.MarkSoldErr != nil {
		return nil, s.MarkSoldErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok || product.Status != model.ProductStatusApproved || product.Quantity != 0 {
		return nil, domainErrors.ErrNotFound
	}
	product.Status = model.ProductStatusSold
	copy := *product
	return &copy, nil
}

// Release restores quantity and approved status.
func (s *ProductRepositoryStub) Release(ctx context.Context, productID int64, quantity int) error {
	s.mu.Lock()
	s.ReleaseCalls = append(s.ReleaseCalls, productID)
	s.mu.Unlock()
	if s.ReleaseErr != nil {
		return s.ReleaseErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	product.Quantity += quantity
	product.Status = model.ProductStatusApproved
	return nil
}

// SetStatus updates moderation status.
func (s *ProductRepositoryStub) SetStatus(ctx context.Context, productID int64, status model.ProductStatus) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	product.Status = status
	copy := *product
	return &copy, nil
}

// OrderRepositoryStub records created orders and serves configured lists.
type OrderRepositoryStub struct {
	mu       sync.Mutex
	CreateFn func(context.Context, model.Order) (*model.Order, error)
	Orders   []model.Order
	Next     int64
}

// Create stores the order unless an override is configured.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Next == 0 {
		s.Next = 1
	}
	order.ID = s.Next
	s.Next++
	order.CreatedAt = time.Now()
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// ListByBuyer filters stored orders by buyer.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.BuyerID == buyerID {
			result = append(result, o)
		}
	}
	return result, nil
}

// ListBySeller filters stored orders by seller.
func (s *OrderRepositoryStub) ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.SellerID == sellerID {
			result = append(result, o)
		}
	}
	return result, nil
}

// NotificationRepositoryStub stores notifications in-memory.
type NotificationRepositoryStub struct {
	mu            sync.Mutex
	Notifications []model.Notification
	Next          int64
	CreateErr     error
	FailuresLeft  int
}

// Create stores the notification. FailuresLeft makes the first N calls
// return CreateErr, exercising retry paths.
func (s *NotificationRepositoryStub) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailuresLeft > 0 {
		s.FailuresLeft--
		return nil, s.CreateErr
	}
	if s.Next == 0 {
		s.Next = 1
	}
	notification.ID = s.Next
	s.Next++
	notification.CreatedAt = time.Now()
	s.Notifications = append(s.Notifications, notification)
	return &notification, nil
}

// Stored returns a snapshot of persisted notifications.
func (s *NotificationRepositoryStub) Stored() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.Notifications...)
}

// ListRecent returns stored notifications, newest first, filtered by seller.
func (s *NotificationRepositoryStub) ListRecent(ctx context.Context, sellerID *int64, limit int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Notification
	for i := len(s.Notifications) - 1; i >= 0 && len(result) < limit; i-- {
		n := s.Notifications[i]
		if sellerID == nil || n.SellerID == *sellerID {
			result = append(result, n)
		}
	}
	return result, nil
}

// CountUnread counts stored unread notifications for the seller.
func (s *NotificationRepositoryStub) CountUnread(ctx context.Context, sellerID *int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.Notifications {
		if !n.IsRead && (sellerID == nil || n.SellerID == *sellerID) {
			count++
		}
	}
	return count, nil
}

// WishlistRepositoryStub stores saved items keyed by user and product.
type WishlistRepositoryStub struct {
	Items  map[int64]map[int64]*model.WishlistItem
	Lookup func(productID int64) *model.Product
	Next   int64
	Err    error
}

// NewWishlistRepositoryStub constructs stub repository with initialized map.
func NewWishlistRepositoryStub() *WishlistRepositoryStub {
	return &WishlistRepositoryStub{Items: make(map[int64]map[int64]*model.WishlistItem), Next: 1}
}

// Add stores the pair, reporting whether it was newly created.
func (s *WishlistRepositoryStub) Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]map[int64]*model.WishlistItem)
	}
	if s.Items[userID] == nil {
		s.Items[userID] = make(map[int64]*model.WishlistItem)
	}
	if item, ok := s.Items[userID][productID]; ok {
		return item, false, nil
	}
	if s.Next == 0 {
		s.Next = 1
	}
	item := &model.WishlistItem{ID: s.Next, UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	s.Next++
	s.Items[userID][productID] = item
	return item, true, nil
}

// Remove deletes the pair or reports not found.
func (s *WishlistRepositoryStub) Remove(ctx context.Context, userID, productID int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[userID][productID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items[userID], productID)
	return nil
}

// ListByUser returns the user's saved items.
func (s *WishlistRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.WishlistItem
	for _, item := range s.Items[userID] {
		copy := *item
		if s.Lookup != nil {
			copy.Product = s.Lookup(copy.ProductID)
		}
		result = append(result, copy)
	}
	return result, nil
}

// CommissionRepositoryStub stores rate changes in-memory.
type CommissionRepositoryStub struct {
	Changes []model.CommissionChange
	Next    int64
	Err     error
}

// RecordChange appends the change.
func (s *CommissionRepositoryStub) RecordChange(ctx context.Context, rate float64, changedBy int64) (*model.CommissionChange, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	change := model.CommissionChange{ID: s.Next, Rate: rate, ChangedBy: changedBy, CreatedAt: time.Now()}
	s.Next++
	s.Changes = append(s.Changes, change)
	return &change, nil
}

// Latest returns the most recent change or not found.
func (s *CommissionRepositoryStub) Latest(ctx context.Context) (*model.CommissionChange, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Changes) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	change := s.Changes[len(s.Changes)-1]
	return &change, nil
}

// History returns changes newest first.
func (s *CommissionRepositoryStub) History(ctx context.Context, limit int) ([]model.CommissionChange, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.CommissionChange
	for i := len(s.Changes) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.Changes[i])
	}
	return result, nil
}
