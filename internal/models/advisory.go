package models

// FuelSavingTip is one generated fuel-saving suggestion
type FuelSavingTip struct {
	Tip         string `json:"tip"`
	Explanation string `json:"explanation"`
}

// GasStation is a nearby station suggested by the advisory service
type GasStation struct {
	Name    string `json:"name"`
	MapLink string `json:"mapLink,omitempty"`
}

// Coordinate is a geographic position
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
