package receipt

import "time"

const (
	// DefaultProfileID identifies the profile that always exists and cannot be deleted.
	DefaultProfileID = "default"

	defaultProfileName = "Ana Profil"
)

// Profile owns an independent receipt history, e.g. one per household member
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
