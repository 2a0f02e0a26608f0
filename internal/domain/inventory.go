package domain

// InventoryItem as managed through /api/admin/inventory. The list endpoint
// reports quantity as "qty" while the single-item endpoint reports "stock";
// both fields are carried so either response decodes without loss.
type InventoryItem struct {
	SKU         string `json:"sku"`
	ProductName string `json:"productName"`
	Qty         int    `json:"qty"`
	Stock       int    `json:"stock,omitempty"`
}

type UpdateInventoryRequest struct {
	Qty int `json:"qty"`
}
