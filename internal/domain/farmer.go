package domain

// Farmer is one entry of the farmer directory the gateway serves to the
// UI bridge. Directory data is reference data; the gateway never mutates
// it during request processing.
type Farmer struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FarmName    string  `json:"farm_name"`
	Phone       string  `json:"phone"`
	Location    string  `json:"location"`
	FarmType    string  `json:"farm_type"`
	TotalSizeHa float64 `json:"total_size_ha"`
}
