package dto

// SaleItemRequest is one line of a requested sale.
type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest for processing a sale.
type CreateSaleRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerPhone string            `json:"customer_phone" binding:"required"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}
