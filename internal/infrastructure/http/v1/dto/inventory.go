package dto

// CreateAdjustmentRequest for a manual stock adjustment.
type CreateAdjustmentRequest struct {
	ProductID      string `json:"product_id" binding:"required,uuid"`
	AdjustmentType string `json:"adjustment_type" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	Reason         string `json:"reason" binding:"required"`
}
