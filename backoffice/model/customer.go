package model

import "time"

type CustomerRole string

const (
	RoleCustomer CustomerRole = "customer"
	RoleAdmin    CustomerRole = "admin"
	RoleStaff    CustomerRole = "staff"
)

type Customer struct {
	ID        int64        `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FullName  string       `json:"full_name"`
	Phone     *string      `json:"phone"`
	Role      CustomerRole `json:"role"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

func (c Customer) EntityID() int64           { return c.ID }
func (c Customer) GroupKey() string          { return string(c.Role) }
func (c Customer) SortMetric(SortKey) float64 { return 0 }
func (c Customer) SortTime() time.Time       { return timeOrZero(c.CreatedAt) }

func (c Customer) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.Username
}

func (c Customer) SearchCodes() []string {
	return []string{c.Username, c.Email}
}
