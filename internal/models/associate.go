package models

// Associate is a partner who sells alongside the principal or whose goods the principal sells.
type Associate struct {
	// ID is the unique identifier for the associate (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g., "Ana - Jewelry").
	Name string `json:"name"`

	// Note is optional free text (contact details, booth position).
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the associate was created.
	CreatedAt int64 `json:"createdAt"`
}
