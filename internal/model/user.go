package model

// User represents a synced BuzzLink user. Id is the backend's numeric
// identifier, ClerkId the stable external identity; push events carry both so
// consumers can tell their own echoes apart from peers'.
type User struct {
	ID          int64  `json:"id"`
	ClerkID     string `json:"clerkId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
	Email       string `json:"email,omitempty"`
}
