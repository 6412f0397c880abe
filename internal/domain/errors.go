package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure and carry no infrastructure dependency.

var (
	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration value")
	ErrNotOnboarded  = errors.New("onboarding not completed")

	// Log errors
	ErrInvalidJuiceLevel = errors.New("juice level must be between 0 and 100")

	// Reward errors. A declined purchase is an expected outcome, not a crash.
	ErrRewardNotFound   = errors.New("reward item not found in catalog")
	ErrAlreadyPurchased = errors.New("reward already purchased")
	ErrInsufficientXP   = errors.New("insufficient experience for purchase")
	ErrNotPurchased     = errors.New("reward not purchased")
	ErrCategoryMismatch = errors.New("reward category mismatch")

	// Smoke-free errors
	ErrAlreadySmokeFree = errors.New("smoke-free streak already running")

	// Remote sync errors
	ErrNoSession      = errors.New("no active remote session")
	ErrSessionExpired = errors.New("remote session expired")
)
