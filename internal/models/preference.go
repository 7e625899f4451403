package models

// Preference is a user's stored settlement defaults.
type Preference struct {
	// UserID is the authenticated user the preference belongs to.
	UserID string

	// Algorithm is the default settlement algorithm name ("" = service default).
	Algorithm string

	// Currency is the preferred payout currency ("" = working currency).
	Currency string

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64
}
