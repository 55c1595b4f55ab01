package tracking

import (
	"testing"
	"time"

	"treko/internal/dao"
	"treko/internal/model"
)

func chunkWith(active, recorded int) *dao.TrackingPayload {
	return &dao.TrackingPayload{
		UserId: "emp-1",
		Stats: dao.PayloadStats{
			ActiveSec:   active,
			RecordedSec: recorded,
		},
	}
}

func TestAbsorbChunkActivityLevel(t *testing.T) {
	session := &model.TrackingSession{}

	// first chunk: fully active
	absorbChunk(session, chunkWith(240, 240))
	if session.ActivityLevel != 100 {
		t.Errorf("expected level 100, got %d", session.ActivityLevel)
	}

	// second chunk: fully idle, level recomputed over cumulative totals
	absorbChunk(session, chunkWith(0, 360))
	if session.ActivityLevel != 40 {
		t.Errorf("expected level 40, got %d", session.ActivityLevel)
	}
	if session.ActiveSec != 240 || session.RecordedSec != 600 {
		t.Errorf("unexpected totals: active=%d recorded=%d", session.ActiveSec, session.RecordedSec)
	}
}

func TestAbsorbChunkZeroRecordedKeepsLevel(t *testing.T) {
	session := &model.TrackingSession{ActivityLevel: 75}
	absorbChunk(session, chunkWith(0, 0))
	if session.ActivityLevel != 75 {
		t.Errorf("level should be untouched when recorded time is zero, got %d", session.ActivityLevel)
	}
}

func TestAbsorbChunkOrderIndependentTotals(t *testing.T) {
	chunks := []*dao.TrackingPayload{
		{
			UserId: "emp-1",
			Stats:  dao.PayloadStats{ActiveSec: 100, EffectiveSec: 90, IdleSec: 20, RecordedSec: 120},
			Apps:   dao.PayloadApps{ActiveByAppSec: map[string]int{"code": 100}},
		},
		{
			UserId: "emp-1",
			Stats:  dao.PayloadStats{ActiveSec: 50, EffectiveSec: 40, IdleSec: 70, OvertimeSec: 10, RecordedSec: 120},
			Apps:   dao.PayloadApps{ActiveByAppSec: map[string]int{"code": 20, "browser": 30}},
		},
	}

	forward := &model.TrackingSession{}
	absorbChunk(forward, chunks[0])
	absorbChunk(forward, chunks[1])

	reversed := &model.TrackingSession{}
	absorbChunk(reversed, chunks[1])
	absorbChunk(reversed, chunks[0])

	if forward.ActiveSec != reversed.ActiveSec ||
		forward.EffectiveSec != reversed.EffectiveSec ||
		forward.IdleSec != reversed.IdleSec ||
		forward.OvertimeSec != reversed.OvertimeSec ||
		forward.RecordedSec != reversed.RecordedSec ||
		forward.ActivityLevel != reversed.ActivityLevel {
		t.Errorf("absorb order changed totals: %+v vs %+v", forward, reversed)
	}
	if forward.ActiveByAppSec["code"] != 120 || forward.ActiveByAppSec["browser"] != 30 {
		t.Errorf("unexpected app seconds: %v", forward.ActiveByAppSec)
	}
}

func TestAbsorbChunkWindowWidening(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	t1 := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC)

	session := &model.TrackingSession{}
	absorbChunk(session, &dao.TrackingPayload{
		UserId: "emp-1",
		Window: dao.PayloadWindow{Start: &t1, End: &t1},
	})
	absorbChunk(session, &dao.TrackingPayload{
		UserId: "emp-1",
		Window: dao.PayloadWindow{Start: &t0, End: &t2},
	})
	absorbChunk(session, &dao.TrackingPayload{
		UserId: "emp-1",
		Window: dao.PayloadWindow{Start: &t1, End: &t1},
	})

	if !session.WindowStart.Equal(t0) {
		t.Errorf("expected window start %v, got %v", t0, session.WindowStart)
	}
	if !session.WindowEnd.Equal(t2) {
		t.Errorf("expected window end %v, got %v", t2, session.WindowEnd)
	}
}

func TestAbsorbChunkMetadataLastWriteWins(t *testing.T) {
	session := &model.TrackingSession{AppVersion: "1.0.0", ProjectId: "p-old"}
	absorbChunk(session, &dao.TrackingPayload{UserId: "emp-1", AppVersion: "1.1.0"})
	if session.AppVersion != "1.1.0" {
		t.Errorf("expected app version 1.1.0, got %s", session.AppVersion)
	}
	if session.ProjectId != "p-old" {
		t.Errorf("empty project id should not clear existing, got %s", session.ProjectId)
	}
}

func TestHeadshotRowsDefaultPending(t *testing.T) {
	now := time.Now()
	payload := &dao.TrackingPayload{
		UserId: "emp-1",
		Media: dao.PayloadMedia{
			Headshots: []dao.MediaItem{
				{Url: "https://cdn.example.com/h1.jpg"},
				{Url: "https://cdn.example.com/h2.jpg", Status: "VERIFIED"},
			},
		},
	}

	rows := headshotRows(7, payload, now)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Status != model.VerificationPending {
		t.Errorf("expected PENDING default, got %s", rows[0].Status)
	}
	if rows[1].Status != model.VerificationVerified {
		t.Errorf("expected VERIFIED passthrough, got %s", rows[1].Status)
	}
	if rows[0].SessionId != 7 {
		t.Errorf("expected session id 7, got %d", rows[0].SessionId)
	}
	if !rows[0].Timestamp.Equal(now) {
		t.Errorf("missing timestamp should fall back to ingest time")
	}
}

func TestTaskUsageRowsCarryChunkId(t *testing.T) {
	payload := &dao.TrackingPayload{
		UserId:    "emp-1",
		ProjectId: "p-1",
		ChunkId:   "chunk-42",
		ByTask: []dao.TaskPayload{
			{TaskId: "t-1", EffectiveSec: 100, RecordedSec: 120},
		},
	}

	rows := taskUsageRows(3, payload)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ChunkId != "chunk-42" || rows[0].ProjectId != "p-1" || rows[0].TaskId != "t-1" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}
