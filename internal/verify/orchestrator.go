package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"treko/internal/config"
	"treko/internal/dao"
	"treko/internal/model"
	"treko/pkg/log"
)

// ErrTransient wraps failures worth requeueing: the headshot stays pending
// and the message comes back later.
var ErrTransient = errors.New("transient verification failure")

func transient(err error) error {
	return fmt.Errorf("%w: %v", ErrTransient, err)
}

// Orchestrator runs the verification of a single headshot end to end: fetch
// both images, ask the matcher, then record the verdict and the interval's
// recomputed composite status under a row lock.
type Orchestrator struct {
	db       *gorm.DB
	store    ObjectStore
	verifier FaceVerifier
	retry    *RetryPolicy
	refPath  string
	logger   *logrus.Entry
}

func NewOrchestrator(db *gorm.DB, store ObjectStore, verifier FaceVerifier, conf config.VerifyConfig) *Orchestrator {
	refPath := conf.ReferencePath
	if refPath == "" {
		refPath = "references/%s.jpg"
	}
	return &Orchestrator{
		db:       db,
		store:    store,
		verifier: verifier,
		retry:    PolicyFromConfig(conf),
		refPath:  refPath,
		logger:   log.NewLogger().WithField("component", "orchestrator"),
	}
}

// ProcessJob verifies one headshot. Errors wrapped in ErrTransient mean the
// job should be requeued; anything else is final.
func (o *Orchestrator) ProcessJob(ctx context.Context, job *dao.VerificationJob) error {
	logger := o.logger.WithFields(logrus.Fields{
		"intervalId": job.IntervalId,
		"headshot":   job.HeadshotIndex,
	})

	verdict, err := o.verdict(ctx, job)
	if err != nil {
		return err
	}
	logger.Infof("headshot verdict: %s", verdict)

	err = o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		interval, err := model.GetIntervalForUpdateNoWait(tx, job.IntervalId)
		if err != nil {
			// lock contention surfaces here; let the queue retry
			return transient(err)
		}
		if interval == nil {
			return fmt.Errorf("interval %d not found", job.IntervalId)
		}
		if job.HeadshotIndex >= len(interval.Headshots) {
			return fmt.Errorf("interval %d has no headshot %d", job.IntervalId, job.HeadshotIndex)
		}
		if interval.Headshots[job.HeadshotIndex].Status != model.VerificationPending {
			// somebody else already settled this headshot
			return nil
		}

		interval.Headshots[job.HeadshotIndex].Status = verdict
		interval.VerificationStatus = ReduceStatus(interval.Headshots)
		return model.UpdateInterval(tx, interval)
	})
	return err
}

// verdict fetches both images and runs the matcher under the retry policy.
// Image-level verdicts (no face, missing reference, mismatch) settle the
// headshot as suspicious; exhausted transport retries leave it pending.
func (o *Orchestrator) verdict(ctx context.Context, job *dao.VerificationJob) (model.VerificationStatus, error) {
	reference, err := o.store.FetchKey(ctx, fmt.Sprintf(o.refPath, job.EmployeeId))
	if err != nil {
		if IsNotFound(err) {
			// nothing to match against is itself suspicious
			return model.VerificationSuspicious, nil
		}
		return "", transient(err)
	}

	candidate, err := o.store.FetchURL(ctx, job.Url)
	if err != nil {
		if IsNotFound(err) {
			return model.VerificationSuspicious, nil
		}
		return "", transient(err)
	}

	var matched bool
	err = o.retry.Execute(func() error {
		var verifyErr error
		matched, verifyErr = o.verifier.Verify(ctx, reference, candidate)
		return verifyErr
	})
	if err != nil {
		if errors.Is(err, ErrNoFace) {
			return model.VerificationSuspicious, nil
		}
		if o.retry.isRetryable(err) {
			return "", transient(err)
		}
		return model.VerificationSuspicious, nil
	}

	if matched {
		return model.VerificationVerified, nil
	}
	return model.VerificationSuspicious, nil
}
