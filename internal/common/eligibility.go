package common

import "context"

// EligibilityVerifier answers whether a user may enter drawings. The policy
// data behind it (age, state deny-list) lives with the profile service, so
// the sweepstakes core only consumes this interface.
type EligibilityVerifier interface {
	Verify(ctx context.Context, userID string) error
}

type allowAllVerifier struct{}

// NewAllowAllVerifier is the wiring default for deployments where eligibility
// was already enforced at profile creation.
func NewAllowAllVerifier() *allowAllVerifier {
	return &allowAllVerifier{}
}

func (*allowAllVerifier) Verify(ctx context.Context, userID string) error {
	return nil
}
