package dto

// CreateProductRequest for registering a catalog product.
type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	SKU   string `json:"sku" binding:"required"`
	Price string `json:"price" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// UpdateProductRequest for updating catalog fields. Stock is not
// updatable here; use inventory adjustments.
type UpdateProductRequest struct {
	Name  *string `json:"name"`
	SKU   *string `json:"sku"`
	Price *string `json:"price"`
}
