package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/sirupsen/logrus"

	"treko/internal/config"
	"treko/internal/dao"
	"treko/internal/model"
	"treko/pkg/log"
)

// Worker consumes verification jobs from NSQ and settles headshot statuses.
type Worker struct {
	conf         *config.Config
	ctx          context.Context
	cancel       context.CancelFunc
	consumer     *nsq.Consumer
	orchestrator *Orchestrator
	wg           sync.WaitGroup
	logger       *logrus.Entry
}

func NewWorker(conf *config.Config) (*Worker, error) {
	ctx, cancel := context.WithCancel(context.Background())

	logger := log.GetLogger(ctx).WithField("component", "verify-worker")

	nsqConf := nsq.NewConfig()
	nsqConf.MsgTimeout = time.Minute
	nsqConf.MaxInFlight = 10
	nsqConf.MaxAttempts = uint16(conf.Verify.MaxAttempts)

	consumer, err := nsq.NewConsumer(conf.NSQ.Topic, "treko-verify", nsqConf)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}

	store, err := NewObjectStore(conf.S3)
	if err != nil {
		cancel()
		return nil, err
	}
	verifier, err := NewFaceVerifier(conf.Verify)
	if err != nil {
		cancel()
		return nil, err
	}

	w := &Worker{
		conf:         conf,
		ctx:          ctx,
		cancel:       cancel,
		consumer:     consumer,
		orchestrator: NewOrchestrator(model.DB, store, verifier, conf.Verify),
		logger:       logger,
	}

	consumer.AddHandler(w)

	return w, nil
}

func (w *Worker) HandleMessage(message *nsq.Message) error {
	w.logger.Debugf("Received NSQ message: %s", string(message.Body))
	message.DisableAutoResponse()

	var job dao.VerificationJob
	if err := json.Unmarshal(message.Body, &job); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal verification job")
		message.Finish()
		return nil
	}

	err := w.orchestrator.ProcessJob(w.ctx, &job)
	if err != nil {
		if errors.Is(err, ErrTransient) {
			w.logger.WithError(err).Warnf("transient failure for interval %d headshot %d, requeueing",
				job.IntervalId, job.HeadshotIndex)
			message.Requeue(time.Duration(w.conf.Verify.BackoffSec) * time.Second)
			return nil
		}
		w.logger.WithError(err).Errorf("verification failed for interval %d headshot %d",
			job.IntervalId, job.HeadshotIndex)
		message.Finish()
		return nil
	}

	message.Finish()
	w.logger.Debugf("settled headshot %d of interval %d", job.HeadshotIndex, job.IntervalId)
	return nil
}

func (w *Worker) Start() error {
	w.logger.Info("Starting verification worker...")

	err := w.consumer.ConnectToNSQDs(w.conf.NSQ.NSQDAddrs)
	if err != nil {
		return fmt.Errorf("failed to connect to NSQs: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		<-w.ctx.Done()
		w.consumer.Stop()
	}()

	return nil
}

func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
}
