package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/repository"
)

// RoomReconciler periodically releases occupied rooms whose leases have
// ended without the room being freed. Room status stays authoritative for
// day-to-day reads; the reconciler only repairs drift.
type RoomReconciler struct {
	properties *repository.PropertyRepository
	interval   time.Duration
	logger     *logrus.Logger
	stop       chan struct{}
	done       chan struct{}
}

// NewRoomReconciler creates a reconciler. An interval of zero disables it.
func NewRoomReconciler(properties *repository.PropertyRepository, interval time.Duration, logger *logrus.Logger) *RoomReconciler {
	return &RoomReconciler{
		properties: properties,
		interval:   interval,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start runs the reconciler loop in a goroutine. The first pass runs
// immediately on startup.
func (r *RoomReconciler) Start() {
	if r.interval <= 0 {
		r.logger.Info("Room status reconciler disabled")
		close(r.done)
		return
	}

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.runOnce()
		for {
			select {
			case <-ticker.C:
				r.runOnce()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for it to finish
func (r *RoomReconciler) Stop() {
	close(r.stop)
	<-r.done
}

func (r *RoomReconciler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	released, err := r.properties.ReleaseStaleOccupancies(ctx, time.Now())
	if err != nil {
		r.logger.WithError(err).Error("Room status reconciliation failed")
		return
	}
	if released > 0 {
		r.logger.WithField("rooms_released", released).Info("Released rooms with no active lease")
	}
}
