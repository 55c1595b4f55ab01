package verify

import (
	"treko/internal/model"
)

// ReduceStatus collapses per-headshot statuses into the interval's composite
// verification status. An interval with no headshots has nothing to verify
// and stays pending; one suspicious headshot taints the whole interval.
func ReduceStatus(headshots model.HeadshotSlice) model.VerificationStatus {
	if len(headshots) == 0 {
		return model.VerificationPending
	}
	pending := false
	for _, h := range headshots {
		switch h.Status {
		case model.VerificationSuspicious:
			return model.VerificationSuspicious
		case model.VerificationVerified:
		default:
			pending = true
		}
	}
	if pending {
		return model.VerificationPending
	}
	return model.VerificationVerified
}
