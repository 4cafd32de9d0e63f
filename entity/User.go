package entity

import "gorm.io/gorm"

// Role is a closed enumeration with a total order. Every role gate compares
// ranks, so "admin can do everything a user can" holds by construction.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// Rank returns the role's position in the hierarchy. Unknown roles rank 0,
// below every real role.
func (r Role) Rank() int { return roleRank[r] }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return roleRank[r] > 0 }

// Auth providers.
const (
	ProviderEmail    = "email"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderApple    = "apple"
)

type User struct {
	gorm.Model

	Email    string `json:"email" gorm:"size:191;uniqueIndex"`
	Password string `json:"-"` // bcrypt hash; empty for social accounts
	Name     string `json:"name"`
	Role     Role   `json:"role" gorm:"size:32;default:user"`

	// Provider identity. ProviderID is NULL for email accounts so the
	// composite unique index only bites for social logins.
	Provider   string  `json:"provider" gorm:"size:32;index:uniq_provider_identity,unique"`
	ProviderID *string `json:"providerId,omitempty" gorm:"size:191;index:uniq_provider_identity,unique"`

	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}
