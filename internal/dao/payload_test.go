package dao

import (
	"encoding/json"
	"testing"
)

func TestMediaItemUnmarshalBareString(t *testing.T) {
	var item MediaItem
	if err := json.Unmarshal([]byte(`"http://minio/treko/s1.jpg"`), &item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Url != "http://minio/treko/s1.jpg" {
		t.Errorf("expected url from bare string, got %q", item.Url)
	}
}

func TestMediaItemUnmarshalObject(t *testing.T) {
	var item MediaItem
	data := []byte(`{"url":"http://minio/treko/s1.jpg","window_title":"editor","timestamp":"2025-03-10T09:10:00Z"}`)
	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Url != "http://minio/treko/s1.jpg" || item.WindowTitle != "editor" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Timestamp.IsZero() {
		t.Error("timestamp should be parsed")
	}
}

func TestTrackingPayloadUnmarshalMixedMedia(t *testing.T) {
	data := []byte(`{
		"user_id": "emp-1",
		"stats": {"active_sec": 120, "recorded_sec": 300},
		"media": {
			"screenshots": ["http://minio/treko/s1.jpg", {"url": "http://minio/treko/s2.jpg", "window_title": "terminal"}],
			"headshots": [{"url": "http://minio/treko/h1.jpg"}]
		}
	}`)

	var payload TrackingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.UserId != "emp-1" {
		t.Errorf("expected emp-1, got %q", payload.UserId)
	}
	if payload.Stats.ActiveSec != 120 || payload.Stats.RecordedSec != 300 {
		t.Errorf("unexpected stats: %+v", payload.Stats)
	}
	if len(payload.Media.Screenshots) != 2 {
		t.Fatalf("expected 2 screenshots, got %d", len(payload.Media.Screenshots))
	}
	if payload.Media.Screenshots[0].Url != "http://minio/treko/s1.jpg" {
		t.Errorf("bare string screenshot not decoded: %+v", payload.Media.Screenshots[0])
	}
	if payload.Media.Screenshots[1].WindowTitle != "terminal" {
		t.Errorf("object screenshot not decoded: %+v", payload.Media.Screenshots[1])
	}
}
