package model

import (
	"net/url"
	"strconv"
	"strings"
)

// ProductDraft is the product form. Payload produces the upstream body.
type ProductDraft struct {
	Name          string  `json:"name" validate:"trimmin=2,trimmax=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Price         float64 `json:"price" validate:"gte=0,lte=1000000000000"`
	OriginalPrice float64 `json:"original_price" validate:"gte=0,lte=1000000000000"`
	SalePrice     float64 `json:"sale_price" validate:"gte=0,lte=1000000000000"`
	ImageURL      string  `json:"image_url" validate:"omitempty,max=2048"`
	Stock         int64   `json:"stock" validate:"gte=0"`
	ProductCode   string  `json:"product_code" validate:"trimmax=100"`
	Category      string  `json:"category" validate:"trimmax=100"`
	ProductGroup  string  `json:"product_group" validate:"trimmax=100"`
	Active        *bool   `json:"active"`
}

func (d ProductDraft) Payload() map[string]any {
	name := strings.TrimSpace(d.Name)

	code := strings.TrimSpace(d.ProductCode)
	if code == "" {
		code = ProductCodeFromName(name)
	}
	if code == "" {
		code = PlaceholderCode("PRD")
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = CategoryElectronics
	}

	active := true
	if d.Active != nil {
		active = *d.Active
	}

	payload := map[string]any{
		"name":          name,
		"description":   strings.TrimSpace(d.Description),
		"price":         d.Price,
		"originalPrice": d.OriginalPrice,
		"salePrice":     d.SalePrice,
		"imageUrl":      strings.TrimSpace(d.ImageURL),
		"stock":         d.Stock,
		"productCode":   code,
		"category":      category,
		"status":        active,
	}
	if group := strings.TrimSpace(d.ProductGroup); group != "" {
		payload["productGroup"] = group
	}
	return payload
}

// InventoryDraft creates a stock row or sets the quantity of an existing one.
type InventoryDraft struct {
	ProductID int64  `json:"product_id" validate:"gt=0"`
	VariantID int64  `json:"variant_id" validate:"gte=0"`
	Quantity  int64  `json:"quantity" validate:"gte=0,lte=1000000000"`
	Reason    string `json:"reason" validate:"trimmax=500"`
}

// UpdateExempt lists the fields a quantity update does not carry.
func (d InventoryDraft) UpdateExempt() []string {
	return []string{"ProductID", "VariantID"}
}

func (d InventoryDraft) Payload() map[string]any {
	payload := map[string]any{
		"quantity": d.Quantity,
	}
	if d.ProductID > 0 {
		payload["productId"] = d.ProductID
	}
	if d.VariantID > 0 {
		payload["variantId"] = d.VariantID
	}
	if reason := strings.TrimSpace(d.Reason); reason != "" {
		payload["reason"] = reason
	}
	return payload
}

// OrderDraft changes the status of an order.
type OrderDraft struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

func (d OrderDraft) Payload() map[string]any {
	return map[string]any{"status": string(d.Status)}
}

// CustomerDraft is the user form. Passwords are only required on create.
type CustomerDraft struct {
	Username        string       `json:"username" validate:"trimmin=3,trimmax=50"`
	Email           string       `json:"email" validate:"required,email"`
	FullName        string       `json:"full_name" validate:"trimmax=200"`
	Phone           string       `json:"phone" validate:"omitempty,max=20"`
	Role            CustomerRole `json:"role" validate:"omitempty,oneof=customer admin staff"`
	Password        string       `json:"password" validate:"min=6,max=128"`
	ConfirmPassword string       `json:"confirm_password" validate:"eqfield=Password"`
}

func (d CustomerDraft) UpdateExempt() []string {
	if d.Password != "" {
		return nil
	}
	return []string{"Password", "ConfirmPassword"}
}

func (d CustomerDraft) Payload() map[string]any {
	role := d.Role
	if role == "" {
		role = RoleCustomer
	}

	payload := map[string]any{
		"username": strings.TrimSpace(d.Username),
		"email":    strings.TrimSpace(d.Email),
		"fullName": strings.TrimSpace(d.FullName),
		"phone":    nil,
		"role":     string(role),
	}
	if phone := strings.TrimSpace(d.Phone); phone != "" {
		payload["phone"] = phone
	}
	if d.Password != "" {
		payload["password"] = d.Password
	}
	return payload
}

// StockMovementDraft imports stock into or exports stock out of a product's
// inventory. The upstream takes both values as query parameters.
type StockMovementDraft struct {
	Type      MovementType `json:"type" validate:"required,oneof=import export"`
	ProductID int64        `json:"product_id" validate:"gt=0"`
	Quantity  int64        `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// Payload is the request body, which the upstream expects empty.
func (d StockMovementDraft) Payload() map[string]any {
	return map[string]any{}
}

func (d StockMovementDraft) Query() url.Values {
	return url.Values{
		"productId": {strconv.FormatInt(d.ProductID, 10)},
		"quantity":  {strconv.FormatInt(d.Quantity, 10)},
	}
}
