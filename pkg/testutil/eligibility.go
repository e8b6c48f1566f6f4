package testutil

import "context"

// MockEligibilityVerifier rejects users listed in Ineligible and accepts
// everyone else, unless VerifyFunc overrides it entirely.
type MockEligibilityVerifier struct {
	Ineligible map[string]error
	VerifyFunc func(ctx context.Context, userID string) error
}

func (v *MockEligibilityVerifier) Verify(ctx context.Context, userID string) error {
	if v.VerifyFunc != nil {
		return v.VerifyFunc(ctx, userID)
	}

	if err, ok := v.Ineligible[userID]; ok {
		return err
	}

	return nil
}
