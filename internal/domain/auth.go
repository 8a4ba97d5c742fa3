package domain

// Principal is the authenticated caller as produced by the identity provider.
type Principal struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
}

type ExportResult struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	Bookings  int    `json:"bookings"`
}
