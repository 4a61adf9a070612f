package domain

// DefectInventory maps a defect class name to its occurrence count for one
// image or image directory, as produced by the detection adapter.
type DefectInventory map[string]int

// DamageReport is the adjudication result for one returned rental.
// Increases holds only classes whose count grew between the before and
// after inventories.
type DamageReport struct {
	Detected  bool           `json:"damage_detected"`
	Increases map[string]int `json:"damage_info"`
}
