package tracking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"treko/internal/dao"
	"treko/internal/model"
	"treko/pkg/log"
)

// ErrMissingEmployee rejects a chunk before any mutation happens.
var ErrMissingEmployee = errors.New("user_id missing")

// Ingestor absorbs tracking payload chunks into the daily session aggregate
// and fans the raw data out into the append-only log rows. One Absorb call is
// one transaction: the session mutation and every log row commit together or
// not at all.
type Ingestor struct {
	db     *gorm.DB
	ledger *ChunkLedger
	logger *logrus.Entry
}

// NewIngestor creates an Ingestor. ledger may be nil, in which case replayed
// chunks are absorbed again (double-counting, as the wire protocol allows).
func NewIngestor(db *gorm.DB, ledger *ChunkLedger) *Ingestor {
	return &Ingestor{
		db:     db,
		ledger: ledger,
		logger: log.NewLogger().WithField("component", "ingestor"),
	}
}

// Absorb merges one payload chunk into the (employee, date) session. The
// returned bool reports a duplicate chunk that was acknowledged without
// re-absorbing.
func (i *Ingestor) Absorb(ctx context.Context, payload *dao.TrackingPayload) (*model.TrackingSession, bool, error) {
	if payload.UserId == "" {
		return nil, false, ErrMissingEmployee
	}

	if i.ledger != nil && payload.ChunkId != "" {
		fresh, err := i.ledger.Acquire(ctx, payload.ChunkId)
		if err != nil {
			return nil, false, err
		}
		if !fresh {
			i.logger.Infof("chunk %s already absorbed, acknowledging without mutation", payload.ChunkId)
			return nil, true, nil
		}
	}

	now := time.Now()
	date := now.Format("2006-01-02")
	if !payload.GeneratedAt.IsZero() {
		date = payload.GeneratedAt.Format("2006-01-02")
	}

	var session *model.TrackingSession
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		session, err = model.GetSessionForUpdate(tx, payload.UserId, date)
		if err != nil {
			return err
		}
		if session == nil {
			session = &model.TrackingSession{
				EmployeeId: payload.UserId,
				Date:       date,
				IsOnline:   true,
			}
			if err := model.AddSession(tx, session); err != nil {
				return err
			}
		}

		absorbChunk(session, payload)

		if err := model.UpdateSession(tx, session); err != nil {
			return err
		}
		if err := model.AddAppUsages(tx, appUsageRows(session.Id, payload)); err != nil {
			return err
		}
		if err := model.AddTaskUsages(tx, taskUsageRows(session.Id, payload)); err != nil {
			return err
		}
		if err := model.AddScreenshotLogs(tx, screenshotRows(session.Id, payload, now)); err != nil {
			return err
		}
		return model.AddHeadshotLogs(tx, headshotRows(session.Id, payload, now))
	})
	if err != nil {
		if i.ledger != nil && payload.ChunkId != "" {
			// release so a client retry of the failed chunk is not dropped
			if relErr := i.ledger.Release(ctx, payload.ChunkId); relErr != nil {
				i.logger.WithError(relErr).Errorf("failed to release chunk %s", payload.ChunkId)
			}
		}
		return nil, false, err
	}

	return session, false, nil
}

// absorbChunk folds one chunk into the session row. Counters only grow and
// the observed window only widens; replaying chunks in any order converges to
// the same totals.
func absorbChunk(session *model.TrackingSession, payload *dao.TrackingPayload) {
	if payload.AppVersion != "" {
		session.AppVersion = payload.AppVersion
	}
	if payload.ProjectId != "" {
		session.ProjectId = payload.ProjectId
	}
	session.IsOnline = true

	session.ActiveSec += payload.Stats.ActiveSec
	session.EffectiveSec += payload.Stats.EffectiveSec
	session.IdleSec += payload.Stats.IdleSec
	session.OvertimeSec += payload.Stats.OvertimeSec
	session.RecordedSec += payload.Stats.RecordedSec
	session.TotalDuration += payload.Stats.RecordedSec

	// recomputed from cumulative totals, not averaged per chunk
	if session.RecordedSec > 0 {
		session.ActivityLevel = int(math.Round(float64(session.ActiveSec) / float64(session.RecordedSec) * 100))
	}

	if payload.Window.Start != nil {
		if session.WindowStart == nil || payload.Window.Start.Before(*session.WindowStart) {
			session.WindowStart = payload.Window.Start
		}
	}
	if payload.Window.End != nil {
		if session.WindowEnd == nil || payload.Window.End.After(*session.WindowEnd) {
			session.WindowEnd = payload.Window.End
		}
	}

	session.AppSessionCount += payload.Apps.SessionCount
	session.AppSessionDurationSec += payload.Apps.SessionDurationSec
	session.ActiveByAppSec = model.SecondsMap(
		MergeSeconds(map[string]int(session.ActiveByAppSec), payload.Apps.ActiveByAppSec))
}

func appUsageRows(sessionId int, payload *dao.TrackingPayload) []model.ActiveAppUsage {
	rows := make([]model.ActiveAppUsage, 0, len(payload.Apps.ActiveByAppSec))
	for appName, seconds := range payload.Apps.ActiveByAppSec {
		rows = append(rows, model.ActiveAppUsage{
			SessionId: sessionId,
			AppName:   appName,
			Seconds:   seconds,
			ChunkId:   payload.ChunkId,
		})
	}
	return rows
}

func taskUsageRows(sessionId int, payload *dao.TrackingPayload) []model.TaskUsage {
	rows := make([]model.TaskUsage, 0, len(payload.ByTask))
	for _, task := range payload.ByTask {
		rows = append(rows, model.TaskUsage{
			SessionId:            sessionId,
			TaskId:               task.TaskId,
			ProjectId:            payload.ProjectId,
			EffectiveSec:         task.EffectiveSec,
			OvertimeSec:          task.OvertimeSec,
			RecordedSec:          task.RecordedSec,
			RemainingTaskTimeSec: task.RemainingTaskTimeSec,
			TotalTaskTimeSec:     task.TotalTaskTimeSec,
			TotalWorkedTimeSec:   task.TotalWorkedTimeSec,
			ChunkId:              payload.ChunkId,
		})
	}
	return rows
}

func screenshotRows(sessionId int, payload *dao.TrackingPayload, now time.Time) []model.ScreenshotLog {
	rows := make([]model.ScreenshotLog, 0, len(payload.Media.Screenshots))
	for _, item := range payload.Media.Screenshots {
		ts := item.Timestamp
		if ts.IsZero() {
			ts = now
		}
		rows = append(rows, model.ScreenshotLog{
			SessionId:   sessionId,
			Url:         item.Url,
			WindowTitle: item.WindowTitle,
			Timestamp:   ts,
		})
	}
	return rows
}

func headshotRows(sessionId int, payload *dao.TrackingPayload, now time.Time) []model.HeadshotLog {
	rows := make([]model.HeadshotLog, 0, len(payload.Media.Headshots))
	for _, item := range payload.Media.Headshots {
		ts := item.Timestamp
		if ts.IsZero() {
			ts = now
		}
		status := model.VerificationPending
		if item.Status != "" {
			status = model.VerificationStatus(item.Status)
		}
		rows = append(rows, model.HeadshotLog{
			SessionId: sessionId,
			Url:       item.Url,
			Status:    status,
			Timestamp: ts,
		})
	}
	return rows
}
