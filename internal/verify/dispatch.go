package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"treko/internal/config"
	"treko/internal/dao"
	"treko/internal/model"
	"treko/pkg/log"
)

const dispatchKeyTTL = 24 * time.Hour

// Dispatcher publishes one verification job per pending headshot of an
// interval. With Redis configured each (interval, headshot) pair is published
// at most once, so re-verification requests do not stack duplicate jobs for
// headshots already in flight.
type Dispatcher struct {
	producer *nsq.Producer
	redis    *redis.Client
	topic    string
	logger   *logrus.Entry
}

// NewDispatcher creates a Dispatcher. redisCli may be nil, which disables the
// at-most-once guard.
func NewDispatcher(conf config.NSQConfig, redisCli *redis.Client) (*Dispatcher, error) {
	producer, err := nsq.NewProducer(conf.NSQDAddr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("create NSQ producer failed: %w", err)
	}
	return &Dispatcher{
		producer: producer,
		redis:    redisCli,
		topic:    conf.Topic,
		logger:   log.NewLogger().WithField("component", "dispatcher"),
	}, nil
}

// Dispatch enqueues verification jobs for every pending headshot of the
// interval. It returns the number of jobs published.
func (d *Dispatcher) Dispatch(ctx context.Context, interval *model.ActivityInterval) (int, error) {
	published := 0
	for idx, headshot := range interval.Headshots {
		if headshot.Status != model.VerificationPending || headshot.Url == "" {
			continue
		}
		if d.redis != nil {
			key := fmt.Sprintf("verify:%d:%d", interval.Id, idx)
			fresh, err := d.redis.SetNX(ctx, key, 1, dispatchKeyTTL).Result()
			if err != nil {
				return published, err
			}
			if !fresh {
				d.logger.Debugf("headshot %d of interval %d already dispatched", idx, interval.Id)
				continue
			}
		}

		job := dao.VerificationJob{
			IntervalId:    interval.Id,
			HeadshotIndex: idx,
			EmployeeId:    interval.EmployeeId,
			Url:           headshot.Url,
		}
		body, err := json.Marshal(job)
		if err != nil {
			return published, err
		}
		if err := d.producer.Publish(d.topic, body); err != nil {
			return published, fmt.Errorf("publish verification job failed: %w", err)
		}
		published++
	}
	return published, nil
}

// Stop flushes and closes the underlying producer.
func (d *Dispatcher) Stop() {
	d.producer.Stop()
}
