package verify

import (
	"testing"

	"treko/internal/model"
)

func TestReduceStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.VerificationStatus
		want     model.VerificationStatus
	}{
		{"empty stays pending", nil, model.VerificationPending},
		{"all verified", []model.VerificationStatus{model.VerificationVerified, model.VerificationVerified}, model.VerificationVerified},
		{"one pending", []model.VerificationStatus{model.VerificationVerified, model.VerificationPending}, model.VerificationPending},
		{"one suspicious taints", []model.VerificationStatus{model.VerificationVerified, model.VerificationSuspicious}, model.VerificationSuspicious},
		{"suspicious beats pending", []model.VerificationStatus{model.VerificationPending, model.VerificationSuspicious}, model.VerificationSuspicious},
		{"single verified", []model.VerificationStatus{model.VerificationVerified}, model.VerificationVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headshots := make(model.HeadshotSlice, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				headshots = append(headshots, model.Headshot{Url: "u", Status: s})
			}
			if got := ReduceStatus(headshots); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
