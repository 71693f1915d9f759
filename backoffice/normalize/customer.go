package normalize

import (
	"strings"
	"time"

	"encore.app/backoffice/model"
)

func (n *Normalizer) Customers(raw any) []model.Customer {
	return collect(raw, n.Customer)
}

// Customer normalizes one user record. Role defaults to customer and an empty phone is null.
func (n *Normalizer) Customer(raw any) (model.Customer, bool) {
	rec, ok := asRecord(raw)
	if !ok {
		return model.Customer{}, false
	}

	c := model.Customer{
		ID:        rec.count("id", "userId"),
		Username:  rec.text("username", "userName", "user_name"),
		Email:     rec.text("email", "emailAddress"),
		FullName:  rec.text("fullName", "full_name", "name"),
		Role:      customerRole(rec.text("role", "roles.0", "roles.0.name")),
		CreatedAt: rec.timestamp("createdAt", "created_at"),
		UpdatedAt: rec.timestamp("updatedAt", "updated_at"),
	}
	if phone := rec.text("phone", "phoneNumber"); phone != "" {
		c.Phone = &phone
	}
	return c, true
}

func customerRole(s string) model.CustomerRole {
	s = strings.TrimPrefix(strings.ToLower(s), "role_")
	switch role := model.CustomerRole(s); role {
	case model.RoleAdmin, model.RoleStaff, model.RoleCustomer:
		return role
	}
	return model.RoleCustomer
}

// CustomerToRaw renders a customer in the shape the upstream API returns it.
func CustomerToRaw(c model.Customer) map[string]any {
	raw := map[string]any{
		"id":       c.ID,
		"username": c.Username,
		"email":    c.Email,
		"fullName": c.FullName,
		"phone":    nil,
		"role":     string(c.Role),
	}
	if c.Phone != nil {
		raw["phone"] = *c.Phone
	}
	if c.CreatedAt != nil {
		raw["createdAt"] = formatTime(*c.CreatedAt)
	}
	if c.UpdatedAt != nil {
		raw["updatedAt"] = formatTime(*c.UpdatedAt)
	}
	return raw
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
