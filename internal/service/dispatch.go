package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/redis"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository"
)

// rideLockTTL bounds how long a dispatch attempt may hold the ride lock.
const rideLockTTL = 10 * time.Second

// DispatchService binds captains to pending rides. Assignment is manual:
// the captain is chosen by a dispatcher, not computed from proximity.
type DispatchService struct {
	rideRepo    repository.RideRepository
	captainRepo repository.CaptainRepository
	riderRepo   repository.RiderRepository
	lockStore   redis.LockStoreInterface
	notifier    Notifier
	mailer      Mailer
	log         *logrus.Logger
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(
	rideRepo repository.RideRepository,
	captainRepo repository.CaptainRepository,
	riderRepo repository.RiderRepository,
	lockStore redis.LockStoreInterface,
	notifier Notifier,
	mailer Mailer,
	log *logrus.Logger,
) *DispatchService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DispatchService{
		rideRepo:    rideRepo,
		captainRepo: captainRepo,
		riderRepo:   riderRepo,
		lockStore:   lockStore,
		notifier:    notifier,
		mailer:      mailer,
		log:         log,
	}
}

// Assign binds a captain to a pending ride. At most one captain is ever
// bound to a ride: the pending→accepted transition is a conditional update,
// and a per-ride redis lock keeps concurrent dispatch attempts from even
// reaching the store.
func (s *DispatchService) Assign(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	captain, err := s.captainRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}
	if captain.Blocked() {
		return nil, ErrCaptainBlocked
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRideLock(ctx, rideID, rideLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			// Another dispatcher is assigning this ride right now.
			return nil, ErrRideNotPending
		}
		defer func() {
			_ = s.lockStore.ReleaseRideLock(ctx, rideID)
		}()
	}

	applied, err := s.rideRepo.AssignCaptain(ctx, rideID, captainID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrRideNotPending
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"ride_id": rideID,
		"captain": captainID,
	}).Info("captain assigned")

	// Side effects after the transition committed. Failures are logged and
	// never roll back the assignment.
	if s.notifier != nil {
		s.notifier.RideAssigned(ride.RiderID, ride)
	}
	s.sendAssignmentEmail(ctx, ride, captain)

	return ride, nil
}

func (s *DispatchService) sendAssignmentEmail(ctx context.Context, ride *domain.Ride, captain *domain.Captain) {
	if s.mailer == nil {
		return
	}

	var riderEmail string
	if s.riderRepo != nil {
		rider, err := s.riderRepo.GetByID(ctx, ride.RiderID)
		if err != nil {
			s.log.WithError(err).WithField("rider", ride.RiderID).Warn("rider lookup for assignment email failed")
		} else {
			riderEmail = rider.Email
		}
	}

	if err := s.mailer.SendRideAssigned(ctx, riderEmail, captain.Email, ride); err != nil {
		s.log.WithError(err).WithField("ride_id", ride.ID).Warn("assignment email failed")
	}
}
