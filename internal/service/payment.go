package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/gateway"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// PaymentService reconciles gateway payments and cash confirmations against
// the ride registry.
type PaymentService struct {
	rideRepo    repository.RideRepository
	paymentRepo repository.PaymentRepository
	gw          gateway.Gateway
	notifier    Notifier
	log         *logrus.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	rideRepo repository.RideRepository,
	paymentRepo repository.PaymentRepository,
	gw gateway.Gateway,
	notifier Notifier,
	log *logrus.Logger,
) *PaymentService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentService{
		rideRepo:    rideRepo,
		paymentRepo: paymentRepo,
		gw:          gw,
		notifier:    notifier,
		log:         log,
	}
}

// CreateOrder opens a gateway order for the given amount (whole currency
// units). The registry is not mutated.
func (s *PaymentService) CreateOrder(ctx context.Context, amount int64, rideID string) (*gateway.Order, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.gw == nil {
		return nil, ErrGatewayUnavailable
	}

	// The ride must exist, but keeps its state untouched.
	if _, err := s.rideRepo.GetByID(ctx, rideID); err != nil {
		return nil, err
	}

	order, err := s.gw.CreateOrder(ctx, amount*100, rideID)
	if err != nil {
		s.log.WithError(err).WithField("ride_id", rideID).Error("gateway order create failed")
		return nil, ErrGatewayUnavailable
	}

	return order, nil
}

// VerifyPayment checks the gateway's view of a payment and, if captured,
// writes the ledger row and flips the ride's payment flags. A payment that
// is not captured performs no writes at all.
func (s *PaymentService) VerifyPayment(ctx context.Context, rideID, orderID, transactionID string) (*domain.PaymentTransaction, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if orderID == "" || transactionID == "" {
		return nil, ErrInvalidPaymentReference
	}
	if s.gw == nil {
		return nil, ErrGatewayUnavailable
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	payment, err := s.gw.FetchPayment(ctx, transactionID)
	if err != nil {
		s.log.WithError(err).WithField("ride_id", rideID).Error("gateway payment fetch failed")
		return nil, ErrGatewayUnavailable
	}

	if !payment.Captured() {
		return nil, ErrPaymentNotCaptured
	}

	txn := &domain.PaymentTransaction{
		ID:            uuid.New().String(),
		RideID:        ride.ID,
		RiderID:       ride.RiderID,
		OrderID:       orderID,
		TransactionID: transactionID,
		Amount:        ride.Fare,
		Method:        domain.PaymentTypeOnline,
		Status:        domain.TransactionDone,
		CreatedAt:     time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if err := s.rideRepo.SetPayment(ctx, rideID, domain.PaymentTypeOnline, true); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"ride_id":        rideID,
		"transaction_id": transactionID,
		"amount":         txn.Amount,
	}).Info("payment verified")

	s.notifyRide(ctx, rideID)

	return txn, nil
}

// MarkCashPaymentDone records a cash settlement. Administrative action; no
// gateway call is made, but a ledger row is still written for the audit
// trail.
func (s *PaymentService) MarkCashPaymentDone(ctx context.Context, rideID string) (*domain.PaymentTransaction, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.PaymentDone {
		return nil, ErrPaymentAlreadyDone
	}

	txn := &domain.PaymentTransaction{
		ID:        uuid.New().String(),
		RideID:    ride.ID,
		RiderID:   ride.RiderID,
		Amount:    ride.Fare,
		Method:    domain.PaymentTypeCash,
		Status:    domain.TransactionDone,
		CreatedAt: time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if err := s.rideRepo.SetPayment(ctx, rideID, domain.PaymentTypeCash, true); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"ride_id": rideID, "amount": txn.Amount}).Info("cash payment recorded")

	s.notifyRide(ctx, rideID)

	return txn, nil
}

func (s *PaymentService) notifyRide(ctx context.Context, rideID string) {
	if s.notifier == nil {
		return
	}
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return
	}
	s.notifier.RideStatusUpdated(ride.RiderID, ride)
}
