package domain

import "time"

// Workplace is the tenant boundary: customers, invoices and analytics are scoped to one.
type Workplace struct {
	WorkplaceID         string  `json:"workplaceID"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // overrides the process-wide default when set
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// EffectiveDefaultCurrency returns the workplace override, or fallback when none is set.
func (w Workplace) EffectiveDefaultCurrency(fallback string) string {
	if w.DefaultCurrencyCode != nil && *w.DefaultCurrencyCode != "" {
		return *w.DefaultCurrencyCode
	}
	return fallback
}

// UserWorkplaceRole defines the possible roles a user can have within a workplace.
type UserWorkplaceRole string

const (
	RoleAdmin    UserWorkplaceRole = "ADMIN"
	RoleMember   UserWorkplaceRole = "MEMBER"
	RoleReadOnly UserWorkplaceRole = "READONLY"
)

// Satisfies reports whether r grants at least the required role.
// ADMIN > MEMBER > READONLY.
func (r UserWorkplaceRole) Satisfies(required UserWorkplaceRole) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

var roleRank = map[UserWorkplaceRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// UserWorkplace represents the membership of a user in a workplace.
type UserWorkplace struct {
	UserID      string            `json:"userID"`
	WorkplaceID string            `json:"workplaceID"`
	Role        UserWorkplaceRole `json:"role"`
	JoinedAt    time.Time         `json:"joinedAt"`
}
