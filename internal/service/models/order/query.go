package order

// QueryOrdersModel represents filter parameters for querying orders
type QueryOrdersModel struct {
	Ids     []int64 `json:"ids,omitempty"`
	MenuIds []int64 `json:"menuIds,omitempty"`
	Status  string  `json:"status,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}
