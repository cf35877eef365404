package usecase

const (
	// DefaultPageSize is applied when a list request does not set a limit.
	DefaultPageSize = 20

	// MaxPageSize caps list requests to keep result sets bounded.
	MaxPageSize = 100
)
