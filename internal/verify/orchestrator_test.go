package verify

import (
	"context"
	"errors"
	"testing"
	"time"

	"treko/internal/config"
	"treko/internal/dao"
	"treko/internal/model"
)

type fakeStore struct {
	objects map[string][]byte
	err     error
}

func (f *fakeStore) FetchURL(_ context.Context, rawURL string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.objects[rawURL], nil
}

func (f *fakeStore) FetchKey(_ context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.objects[key], nil
}

type fakeVerifier struct {
	matched bool
	err     error
	calls   int
}

func (f *fakeVerifier) Verify(_ context.Context, _, _ []byte) (bool, error) {
	f.calls++
	return f.matched, f.err
}

func fastConf() config.VerifyConfig {
	return config.VerifyConfig{MaxAttempts: 2, BackoffSec: 0}
}

func testJob() *dao.VerificationJob {
	return &dao.VerificationJob{
		IntervalId:    1,
		HeadshotIndex: 0,
		EmployeeId:    "emp-1",
		Url:           "http://minio/treko/headshots/h1.jpg",
	}
}

func testStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{
		"references/emp-1.jpg":                []byte("ref"),
		"http://minio/treko/headshots/h1.jpg": []byte("cand"),
	}}
}

func TestVerdictMatch(t *testing.T) {
	o := NewOrchestrator(nil, testStore(), &fakeVerifier{matched: true}, fastConf())

	got, err := o.verdict(context.Background(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != model.VerificationVerified {
		t.Errorf("expected VERIFIED, got %s", got)
	}
}

func TestVerdictMismatch(t *testing.T) {
	o := NewOrchestrator(nil, testStore(), &fakeVerifier{matched: false}, fastConf())

	got, err := o.verdict(context.Background(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != model.VerificationSuspicious {
		t.Errorf("expected SUSPICIOUS, got %s", got)
	}
}

func TestVerdictNoFace(t *testing.T) {
	o := NewOrchestrator(nil, testStore(), &fakeVerifier{err: ErrNoFace}, fastConf())

	got, err := o.verdict(context.Background(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != model.VerificationSuspicious {
		t.Errorf("expected SUSPICIOUS for a no-face verdict, got %s", got)
	}
}

func TestVerdictTransportFailureIsTransient(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("connection refused")}
	o := NewOrchestrator(nil, testStore(), verifier, fastConf())
	o.retry = &RetryPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond, Multiplier: 1, MaxDelay: time.Millisecond}

	_, err := o.verdict(context.Background(), testJob())
	if !errors.Is(err, ErrTransient) {
		t.Errorf("expected ErrTransient, got %v", err)
	}
	if verifier.calls != 2 {
		t.Errorf("expected retry before giving up, got %d calls", verifier.calls)
	}
}

func TestVerdictStoreFailureIsTransient(t *testing.T) {
	o := NewOrchestrator(nil, &fakeStore{err: errors.New("connection refused")}, &fakeVerifier{}, fastConf())

	_, err := o.verdict(context.Background(), testJob())
	if !errors.Is(err, ErrTransient) {
		t.Errorf("expected ErrTransient, got %v", err)
	}
}
