package tracking

import (
	"reflect"
	"testing"
)

func TestSplitSeconds(t *testing.T) {
	s := SplitSeconds(600, 0.5)
	if s.Active != 300 || s.Idle != 300 {
		t.Errorf("expected 300/300, got %d/%d", s.Active, s.Idle)
	}

	s = SplitSeconds(100, 0)
	if s.Active != 0 || s.Idle != 100 {
		t.Errorf("expected 0/100, got %d/%d", s.Active, s.Idle)
	}

	s = SplitSeconds(100, 1.5)
	if s.Active != 100 || s.Idle != 0 {
		t.Errorf("ratio should clamp to 1, got %d/%d", s.Active, s.Idle)
	}

	s = SplitSeconds(100, -0.3)
	if s.Active != 0 || s.Idle != 100 {
		t.Errorf("ratio should clamp to 0, got %d/%d", s.Active, s.Idle)
	}
}

func TestActiveShare(t *testing.T) {
	if got := ActiveShare(600, 50); got != 300 {
		t.Errorf("expected 300, got %d", got)
	}
	if got := ActiveShare(600, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := ActiveShare(600, 100); got != 600 {
		t.Errorf("expected 600, got %d", got)
	}
	// floor of the exact rational, never rounded up
	if got := ActiveShare(100, 33); got != 33 {
		t.Errorf("expected 33, got %d", got)
	}
	if got := ActiveShare(7, 50); got != 3 {
		t.Errorf("expected floor 3, got %d", got)
	}
}

func TestMergeSeconds(t *testing.T) {
	dst := map[string]int{"code": 120, "browser": 60}
	got := MergeSeconds(dst, map[string]int{"browser": 30, "terminal": 10})

	want := map[string]int{"code": 120, "browser": 90, "terminal": 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMergeSecondsNilDst(t *testing.T) {
	got := MergeSeconds(nil, map[string]int{"code": 5})
	if got["code"] != 5 {
		t.Errorf("expected 5, got %d", got["code"])
	}
}

func TestApportionSeconds(t *testing.T) {
	got := ApportionSeconds(map[string]int{"a": 100, "b": 200}, 0.5)
	if got["a"].Active != 50 || got["a"].Idle != 50 {
		t.Errorf("unexpected split for a: %+v", got["a"])
	}
	if got["b"].Active != 100 || got["b"].Idle != 100 {
		t.Errorf("unexpected split for b: %+v", got["b"])
	}
}
