// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/cache"
	"github.com/plmining/licensing-backend/internal/services"
)

const (
	expiryDigestJob = "expiry_digest"
	jobTimeout      = 5 * time.Minute
	// lockTTL only bounds how long a finished tick's key lingers; every tick
	// gets its own key.
	lockTTL = 6 * time.Hour
)

type ExpiringLister interface {
	ExpiringLicenses(ctx context.Context) ([]services.ExpiringLicense, error)
}

type DigestSender interface {
	SendExpiryDigest(ctx context.Context, licenses []services.ExpiringLicense) error
}

// Scheduler runs the periodic background jobs. A Locker keyed by the tick
// keeps a job from running on more than one instance per tick.
type Scheduler struct {
	cron       *cron.Cron
	licenses   ExpiringLister
	digest     DigestSender
	locker     cache.Locker
	spec       string
	instanceID string
}

func New(spec string, licenses ExpiringLister, digest DigestSender, locker cache.Locker) *Scheduler {
	instanceID := os.Getenv("DYNO")
	if instanceID == "" {
		if host, err := os.Hostname(); err == nil && host != "" {
			instanceID = fmt.Sprintf("%s-%d", host, os.Getpid())
		} else {
			instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
		}
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		licenses:   licenses,
		digest:     digest,
		locker:     locker,
		spec:       spec,
		instanceID: instanceID,
	}
}

// Start registers the jobs and starts the cron loop. An invalid schedule is
// returned instead of being silently skipped.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runExpiryDigest); err != nil {
		return fmt.Errorf("failed to register %s job: %w", expiryDigestJob, err)
	}

	s.cron.Start()
	logrus.WithFields(logrus.Fields{
		"instance": s.instanceID,
		"schedule": s.spec,
	}).Info("Scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logrus.Info("Scheduler stopped")
}

func (s *Scheduler) runExpiryDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunExpiryDigest(ctx, time.Now()); err != nil {
		logrus.WithError(err).WithField("job", expiryDigestJob).Error("Scheduled job failed")
	}
}

// tickKey names the lock for one firing of a job. Cron fires on minute
// boundaries, so instances firing for the same tick share the key.
func tickKey(job string, tick time.Time) string {
	return job + ":" + tick.UTC().Truncate(time.Minute).Format("2006-01-02T15:04")
}

// RunExpiryDigest emails the list of licenses that are about to expire or
// recently expired. It is a no-op when another instance already claimed the
// tick. The claim is kept after a successful run and released after a
// failed one so a later attempt for the same tick can retry.
func (s *Scheduler) RunExpiryDigest(ctx context.Context, tick time.Time) (err error) {
	key := tickKey(expiryDigestJob, tick)

	acquired, err := s.locker.TryAcquire(ctx, key, s.instanceID, lockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		logrus.WithField("lock", key).Debug("Tick already claimed by another instance, skipping")
		return nil
	}
	defer func() {
		if err == nil {
			return
		}
		if releaseErr := s.locker.Release(context.WithoutCancel(ctx), key, s.instanceID); releaseErr != nil {
			logrus.WithError(releaseErr).WithField("lock", key).Warn("Failed to release lock")
		}
	}()

	licenses, err := s.licenses.ExpiringLicenses(ctx)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"instance": s.instanceID,
		"lock":     key,
		"count":    len(licenses),
	}).Info("Sending license expiry digest")

	if err := s.digest.SendExpiryDigest(ctx, licenses); err != nil {
		return fmt.Errorf("failed to send expiry digest: %w", err)
	}
	return nil
}
