package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/repository"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/mailer"
)

type fakeTx struct{ calls int }

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeUsers struct {
	byID   map[uint]*model.User
	nextID uint
	// createErr, when set, is returned by Create instead of storing
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uint]*model.User{}}
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	for _, u := range f.byID {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	user.UserID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.byID[user.UserID] = &cp
	return nil
}

func (f *fakeUsers) update(userID uint, apply func(u *model.User)) error {
	u, ok := f.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	apply(u)
	return nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID uint, at time.Time) error {
	return f.update(userID, func(u *model.User) { u.LastLoginAt = &at })
}

func (f *fakeUsers) MarkEmailVerified(_ context.Context, userID uint) error {
	return f.update(userID, func(u *model.User) { u.EmailVerified = true })
}

func (f *fakeUsers) LinkGoogleAccount(_ context.Context, userID uint, googleID string) error {
	return f.update(userID, func(u *model.User) {
		provider := model.ProviderGoogle
		u.GoogleID = &googleID
		u.OAuthProvider = &provider
		u.EmailVerified = true
	})
}

func (f *fakeUsers) CompleteProfile(_ context.Context, userID uint, phone string) error {
	return f.update(userID, func(u *model.User) {
		u.Phone = phone
		u.ProfileCompleted = true
	})
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID uint, passwordHash string) error {
	return f.update(userID, func(u *model.User) {
		u.PasswordHash = &passwordHash
		u.PasswordChangeRequired = false
	})
}

func (f *fakeUsers) SetActive(_ context.Context, userID uint, active bool) error {
	return f.update(userID, func(u *model.User) { u.IsActive = active })
}

func (f *fakeUsers) add(u model.User) *model.User {
	_ = f.Create(context.Background(), &u)
	return &u
}

type fakeEmployees struct {
	byUser map[uint]*model.Employee
	nextID uint
}

func newFakeEmployees() *fakeEmployees {
	return &fakeEmployees{byUser: map[uint]*model.Employee{}}
}

func (f *fakeEmployees) Create(_ context.Context, e *model.Employee) error {
	f.nextID++
	e.EmployeeID = f.nextID
	cp := *e
	f.byUser[e.UserID] = &cp
	return nil
}

func (f *fakeEmployees) GetByUserID(_ context.Context, userID uint) (*model.Employee, error) {
	if e, ok := f.byUser[userID]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRefreshTokens struct {
	tokens []*model.RefreshToken
}

func (f *fakeRefreshTokens) Create(_ context.Context, t *model.RefreshToken) error {
	t.TokenID = uint(len(f.tokens) + 1)
	cp := *t
	f.tokens = append(f.tokens, &cp)
	return nil
}

func (f *fakeRefreshTokens) GetByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokens) Revoke(_ context.Context, tokenID uint) (int64, error) {
	for _, t := range f.tokens {
		if t.TokenID == tokenID && !t.Revoked {
			t.Revoked = true
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRefreshTokens) RevokeAllForUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			n++
		}
	}
	return n, nil
}

func (f *fakeRefreshTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	kept := f.tokens[:0]
	var n int64
	for _, t := range f.tokens {
		if t.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return n, nil
}

func (f *fakeRefreshTokens) byValue(token string) *model.RefreshToken {
	for _, t := range f.tokens {
		if t.Token == token {
			return t
		}
	}
	return nil
}

type fakeVerifications struct {
	tokens []*model.EmailVerificationToken
}

func (f *fakeVerifications) Create(_ context.Context, t *model.EmailVerificationToken) error {
	t.TokenID = uint(len(f.tokens) + 1)
	cp := *t
	f.tokens = append(f.tokens, &cp)
	return nil
}

func (f *fakeVerifications) GetByToken(_ context.Context, token string) (*model.EmailVerificationToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVerifications) MarkVerified(_ context.Context, tokenID uint) (int64, error) {
	for _, t := range f.tokens {
		if t.TokenID == tokenID && !t.Verified {
			t.Verified = true
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeVerifications) DeleteExpiredUnverified(_ context.Context, now time.Time) (int64, error) {
	kept := f.tokens[:0]
	var n int64
	for _, t := range f.tokens {
		if !t.Verified && t.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return n, nil
}

type fakeResets struct {
	tokens []*model.PasswordResetToken
}

func (f *fakeResets) Create(_ context.Context, t *model.PasswordResetToken) error {
	t.TokenID = uint(len(f.tokens) + 1)
	cp := *t
	f.tokens = append(f.tokens, &cp)
	return nil
}

func (f *fakeResets) GetByToken(_ context.Context, token string) (*model.PasswordResetToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResets) MarkUsed(_ context.Context, tokenID uint) (int64, error) {
	for _, t := range f.tokens {
		if t.TokenID == tokenID && !t.Used {
			t.Used = true
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeResets) DeleteExpiredUnused(_ context.Context, now time.Time) (int64, error) {
	kept := f.tokens[:0]
	var n int64
	for _, t := range f.tokens {
		if !t.Used && t.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return n, nil
}

// recordingMailer captures what would have been emailed
type recordingMailer struct {
	mu            sync.Mutex
	verifications map[string]string
	resets        map[string]string
	welcomes      map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		verifications: map[string]string{},
		resets:        map[string]string{},
		welcomes:      map[string]string{},
	}
}

func (m *recordingMailer) SendVerification(_ context.Context, to, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications[to] = token
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, to, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[to] = token
}

func (m *recordingMailer) SendEmployeeWelcome(_ context.Context, user *model.User, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes[user.Email] = password
}

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
	done chan struct{}
}

func (s *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return s.err
}

type fakeIdentity struct {
	identity *GoogleIdentity
	err      error
}

func (f *fakeIdentity) Verify(_ context.Context, _ string) (*GoogleIdentity, error) {
	return f.identity, f.err
}

type fakeCategories struct {
	items     map[uint]*model.Category
	dress     map[uint]int64
	active    map[uint]int64
	nextID    uint
	createErr error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{items: map[uint]*model.Category{}, dress: map[uint]int64{}, active: map[uint]int64{}}
}

func (f *fakeCategories) ListWithDressCount(_ context.Context) ([]repository.CategoryCount, error) {
	var out []repository.CategoryCount
	for id, c := range f.items {
		out = append(out, repository.CategoryCount{CategoryID: id, Name: c.Name, DressCount: f.active[id]})
	}
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id uint) (*model.Category, error) {
	if c, ok := f.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategories) ExistsByName(_ context.Context, name string, excludeID uint) (bool, error) {
	for id, c := range f.items {
		if id != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategories) CountDresses(_ context.Context, id uint) (int64, error) {
	return f.dress[id], nil
}

func (f *fakeCategories) CountActiveDresses(_ context.Context, id uint) (int64, error) {
	return f.active[id], nil
}

func (f *fakeCategories) Create(_ context.Context, c *model.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	c.CategoryID = f.nextID
	cp := *c
	f.items[c.CategoryID] = &cp
	return nil
}

func (f *fakeCategories) Update(_ context.Context, c *model.Category) error {
	cp := *c
	f.items[c.CategoryID] = &cp
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

type fakeDresses struct {
	items  map[uint]*model.Dress
	nextID uint
}

func newFakeDresses() *fakeDresses {
	return &fakeDresses{items: map[uint]*model.Dress{}}
}

func (f *fakeDresses) Browse(_ context.Context, filter dto.CatalogFilter) ([]model.Dress, int64, error) {
	var out []model.Dress
	for _, d := range f.items {
		if d.IsActive {
			out = append(out, *d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDresses) GetByID(_ context.Context, id uint) (*model.Dress, error) {
	if d, ok := f.items[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDresses) GetDetail(ctx context.Context, id uint) (*model.Dress, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeDresses) Create(_ context.Context, d *model.Dress) error {
	f.nextID++
	d.DressID = f.nextID
	cp := *d
	f.items[d.DressID] = &cp
	return nil
}

func (f *fakeDresses) Update(_ context.Context, d *model.Dress) error {
	cp := *d
	f.items[d.DressID] = &cp
	return nil
}

func (f *fakeDresses) Deactivate(_ context.Context, id uint) error {
	f.items[id].IsActive = false
	return nil
}

type fakeVariants struct {
	items     []*model.DressVariant
	createErr error
}

func (f *fakeVariants) ExistsForDress(_ context.Context, dressID uint, size, color string) (bool, error) {
	for _, v := range f.items {
		if v.DressID == dressID && v.Size == size && v.Color == color {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVariants) GetByID(_ context.Context, dressID, variantID uint) (*model.DressVariant, error) {
	for _, v := range f.items {
		if v.DressID == dressID && v.VariantID == variantID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVariants) Create(_ context.Context, v *model.DressVariant) error {
	if f.createErr != nil {
		return f.createErr
	}
	v.VariantID = uint(len(f.items) + 1)
	cp := *v
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeVariants) UpdateStatus(_ context.Context, variantID uint, status model.VariantStatus) error {
	for _, v := range f.items {
		if v.VariantID == variantID {
			v.Status = status
		}
	}
	return nil
}

type fakeStock struct {
	items  []*model.StockItem
	levels []*model.StockLevel
}

func (f *fakeStock) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	for _, it := range f.items {
		if it.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStock) CreateItem(_ context.Context, item *model.StockItem, level *model.StockLevel) error {
	item.StockItemID = uint(len(f.items) + 1)
	level.StockItemID = item.StockItemID
	item.StockLevel = level
	f.items = append(f.items, item)
	f.levels = append(f.levels, level)
	return nil
}

type fakeImages struct {
	items []*model.DressImage
}

func (f *fakeImages) Create(_ context.Context, img *model.DressImage) error {
	img.ImageID = uint(len(f.items) + 1)
	cp := *img
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeImages) GetByID(_ context.Context, dressID, imageID uint) (*model.DressImage, error) {
	for _, img := range f.items {
		if img.DressID == dressID && img.ImageID == imageID {
			cp := *img
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeImages) CountByURL(_ context.Context, url string) (int64, error) {
	var n int64
	for _, img := range f.items {
		if img.URL == url {
			n++
		}
	}
	return n, nil
}

func (f *fakeImages) Delete(_ context.Context, imageID uint) error {
	for i, img := range f.items {
		if img.ImageID == imageID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeMeasurements struct {
	rows  []*model.CustomerMeasurement
	users *fakeUsers
}

func (f *fakeMeasurements) GetActive(_ context.Context, customerID uint) (*model.CustomerMeasurement, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		m := f.rows[i]
		if m.CustomerID == customerID && m.IsActive {
			cp := *m
			if f.users != nil {
				cp.Customer = f.users.byID[customerID]
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMeasurements) DeactivateAll(_ context.Context, customerID uint) (int64, error) {
	var n int64
	for _, m := range f.rows {
		if m.CustomerID == customerID && m.IsActive {
			m.IsActive = false
			n++
		}
	}
	return n, nil
}

func (f *fakeMeasurements) Create(_ context.Context, m *model.CustomerMeasurement) error {
	m.MeasurementID = uint(len(f.rows) + 1)
	m.CreatedAt = time.Now()
	cp := *m
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeMeasurements) activeCount(customerID uint) int {
	n := 0
	for _, m := range f.rows {
		if m.CustomerID == customerID && m.IsActive {
			n++
		}
	}
	return n
}

// fakeOrders maps employee id to the customers they handle
type fakeOrders struct {
	handled map[uint][]uint
}

func (f *fakeOrders) HandlesCustomer(_ context.Context, employeeID, customerID uint) (bool, error) {
	for _, c := range f.handled[employeeID] {
		if c == customerID {
			return true, nil
		}
	}
	return false, nil
}

type memoryCache struct {
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type recordingRemover struct {
	urls []string
}

func (r *recordingRemover) DeleteByURL(_ context.Context, url string) {
	r.urls = append(r.urls, url)
}
