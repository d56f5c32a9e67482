package dto

// CreateSupplierRequest for registering a supplier.
type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// UpdateSupplierRequest for updating supplier fields.
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
}
