package dto

// PurchaseOrderItemRequest is one line of a requested order.
type PurchaseOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	UnitPrice string `json:"unit_price" binding:"required"`
}

// CreatePurchaseOrderRequest for placing a purchase order. Dates arrive
// as date strings ("2025-04-01") or full timestamps.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" binding:"required,uuid"`
	OrderDate  string                     `json:"order_date" binding:"required"`
	Items      []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceivePurchaseOrderRequest marks an order received.
type ReceivePurchaseOrderRequest struct {
	ReceivedDate string `json:"received_date" binding:"required"`
}
