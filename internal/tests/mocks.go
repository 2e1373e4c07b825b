package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/gateway"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/maps"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/redis"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository. The
// transition methods hold the mutex across check-and-set, so concurrent
// callers racing on the same transition see exactly one applied=true.
type MockRideRepository struct {
	mu    sync.Mutex
	rides map[string]*domain.Ride
	codes map[string]string

	// Counters for verification
	CreateCallCount        int32
	AssignCaptainCallCount int32
	StartTripCallCount     int32
	CompleteTripCallCount  int32
	CancelCallCount        int32
	SetPaymentCallCount    int32

	// Error injection
	CreateError     error
	GetByIDError    error
	ListError       error
	SetPaymentError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
		codes: make(map[string]string),
	}
}

// AddRide seeds a ride. The trip code is stripped from reads, matching the
// real store.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *ride
	m.codes[ride.ID] = ride.TripCode
	stored.TripCode = ""
	m.rides[ride.ID] = &stored
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.AddRide(ride)
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetTripCode(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[id]; !ok {
		return "", repository.ErrNotFound
	}
	return m.codes[id], nil
}

func (m *MockRideRepository) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Ride, 0, len(m.rides))
	for _, ride := range m.rides {
		if filter.Status != "" && ride.Status != filter.Status {
			continue
		}
		if filter.RiderID != "" && ride.RiderID != filter.RiderID {
			continue
		}
		if filter.CaptainID != "" && ride.CaptainID != filter.CaptainID {
			continue
		}
		copy := *ride
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockRideRepository) AssignCaptain(ctx context.Context, rideID, captainID string) (bool, error) {
	atomic.AddInt32(&m.AssignCaptainCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if ride.Status != domain.RideStatusPending || ride.CaptainID != "" {
		return false, nil
	}
	ride.Status = domain.RideStatusAccepted
	ride.CaptainID = captainID
	ride.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockRideRepository) StartTrip(ctx context.Context, rideID string) (bool, error) {
	atomic.AddInt32(&m.StartTripCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if ride.Status != domain.RideStatusAccepted {
		return false, nil
	}
	ride.Status = domain.RideStatusOngoing
	ride.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockRideRepository) CompleteTrip(ctx context.Context, rideID, captainID string) (bool, error) {
	atomic.AddInt32(&m.CompleteTripCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if ride.Status != domain.RideStatusOngoing || ride.CaptainID != captainID {
		return false, nil
	}
	ride.Status = domain.RideStatusCompleted
	ride.CompletedAt = time.Now()
	ride.UpdatedAt = ride.CompletedAt
	return true, nil
}

func (m *MockRideRepository) Cancel(ctx context.Context, rideID, reason string) (bool, error) {
	atomic.AddInt32(&m.CancelCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if ride.Status.IsTerminal() {
		return false, nil
	}
	ride.Status = domain.RideStatusCancelled
	ride.CancelReason = reason
	ride.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockRideRepository) SetPayment(ctx context.Context, rideID string, paymentType domain.PaymentType, done bool) error {
	atomic.AddInt32(&m.SetPaymentCallCount, 1)
	if m.SetPaymentError != nil {
		return m.SetPaymentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return repository.ErrNotFound
	}
	ride.PaymentType = paymentType
	ride.PaymentDone = done
	ride.UpdatedAt = time.Now()
	return nil
}

// GetRide returns the stored ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rides[id]
}

// ──────────────────────────────────────────────
// MOCK CAPTAIN REPOSITORY
// ──────────────────────────────────────────────

// MockCaptainRepository is a mock implementation of CaptainRepository.
type MockCaptainRepository struct {
	mu       sync.RWMutex
	captains map[string]*domain.Captain

	UpdateLocationCallCount int32
	UpdateLocationError     error
}

// NewMockCaptainRepository creates a new mock captain repository.
func NewMockCaptainRepository() *MockCaptainRepository {
	return &MockCaptainRepository{captains: make(map[string]*domain.Captain)}
}

// AddCaptain adds a captain to the mock repository.
func (m *MockCaptainRepository) AddCaptain(captain *domain.Captain) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captains[captain.ID] = captain
}

func (m *MockCaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	m.AddCaptain(captain)
	return nil
}

func (m *MockCaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	captain, ok := m.captains[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *captain
	return &copy, nil
}

func (m *MockCaptainRepository) GetAll(ctx context.Context) ([]*domain.Captain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Captain, 0, len(m.captains))
	for _, c := range m.captains {
		copy := *c
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockCaptainRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	captain, ok := m.captains[id]
	if !ok {
		return repository.ErrNotFound
	}
	captain.LastLat = lat
	captain.LastLng = lng
	captain.LocationUpdatedAt = time.Now()
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDER REPOSITORY
// ──────────────────────────────────────────────

// MockRiderRepository is a mock implementation of RiderRepository.
type MockRiderRepository struct {
	mu     sync.RWMutex
	riders map[string]*domain.Rider
}

// NewMockRiderRepository creates a new mock rider repository.
func NewMockRiderRepository() *MockRiderRepository {
	return &MockRiderRepository{riders: make(map[string]*domain.Rider)}
}

// AddRider adds a rider to the mock repository.
func (m *MockRiderRepository) AddRider(rider *domain.Rider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riders[rider.ID] = rider
}

func (m *MockRiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	m.AddRider(rider)
	return nil
}

func (m *MockRiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rider, ok := m.riders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rider
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.PaymentTransaction

	CreateCallCount int32
	CreateError     error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{txns: make(map[string]*domain.PaymentTransaction)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, txn *domain.PaymentTransaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.txns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *txn
	return &copy, nil
}

func (m *MockPaymentRepository) GetByRideID(ctx context.Context, rideID string) (*domain.PaymentTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.txns {
		if txn.RideID == rideID {
			copy := *txn
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// TransactionCount returns the number of ledger rows for assertions.
func (m *MockPaymentRepository) TransactionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txns)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireCallCount int32
	AcquireError     error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[rideID] {
		return false, nil
	}
	m.locks[rideID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, rideID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is an in-memory captain geo index.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]*redis.CaptainLocation

	UpdateError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{locations: make(map[string]*redis.CaptainLocation)}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[captainID] = &redis.CaptainLocation{CaptainID: captainID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) GetLocation(ctx context.Context, captainID string) (*redis.CaptainLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[captainID]
	if !ok {
		return nil, nil
	}
	copy := *loc
	return &copy, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, captainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, captainID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a scriptable payment gateway.
type MockGateway struct {
	mu       sync.Mutex
	payments map[string]*gateway.Payment

	CreateOrderCallCount  int32
	FetchPaymentCallCount int32

	CreateOrderError  error
	FetchPaymentError error

	// LastOrderAmount records the amount passed to CreateOrder, in the
	// smallest currency unit.
	LastOrderAmount int64
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{payments: make(map[string]*gateway.Payment)}
}

// AddPayment scripts the gateway's view of a payment.
func (m *MockGateway) AddPayment(payment *gateway.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, receipt string) (*gateway.Order, error) {
	atomic.AddInt32(&m.CreateOrderCallCount, 1)
	if m.CreateOrderError != nil {
		return nil, m.CreateOrderError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastOrderAmount = amount
	return &gateway.Order{
		ID:       "order_" + receipt,
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

func (m *MockGateway) FetchPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	atomic.AddInt32(&m.FetchPaymentCallCount, 1)
	if m.FetchPaymentError != nil {
		return nil, m.FetchPaymentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[paymentID]
	if !ok {
		return &gateway.Payment{ID: paymentID, Status: "failed"}, nil
	}
	copy := *payment
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// notification records one pushed event for assertions.
type notification struct {
	Kind    string // assigned, status
	RiderID string
	Ride    *domain.Ride
}

// MockNotifier records ride events instead of pushing them.
type MockNotifier struct {
	mu     sync.Mutex
	events []notification
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) RideAssigned(riderID string, ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, notification{Kind: "assigned", RiderID: riderID, Ride: ride})
}

func (m *MockNotifier) RideStatusUpdated(riderID string, ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, notification{Kind: "status", RiderID: riderID, Ride: ride})
}

// EventCount returns how many events were pushed.
func (m *MockNotifier) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// LastEvent returns the most recent event, or zero value when none.
func (m *MockNotifier) LastEvent() notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return notification{}
	}
	return m.events[len(m.events)-1]
}

// ──────────────────────────────────────────────
// MOCK MAILER
// ──────────────────────────────────────────────

// MockMailer records assignment emails.
type MockMailer struct {
	SendCallCount int32
	SendError     error
}

func (m *MockMailer) SendRideAssigned(ctx context.Context, riderEmail, captainEmail string, ride *domain.Ride) error {
	atomic.AddInt32(&m.SendCallCount, 1)
	return m.SendError
}

// ──────────────────────────────────────────────
// MOCK ROUTE RESOLVER
// ──────────────────────────────────────────────

// MockRouteResolver returns a fixed route for any itinerary.
type MockRouteResolver struct {
	DistanceMeters  int64
	DurationSeconds int64
	Err             error
}

func (m *MockRouteResolver) Resolve(ctx context.Context, origin, destination string) (*maps.Route, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &maps.Route{
		DistanceMeters:  m.DistanceMeters,
		DurationSeconds: m.DurationSeconds,
	}, nil
}
