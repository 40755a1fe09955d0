// internal/models/vendor.go
package models

import "encoding/json"

type Vendor struct {
	ID           string   `json:"id"`
	BusinessName string   `json:"businessName"`
	Description  string   `json:"description"`
	Services     []string `json:"services"`
	Location     string   `json:"location"`
	Verified     bool     `json:"verified"`
	Featured     bool     `json:"featured"`
	Rating       float64  `json:"rating"`
}

// UnmarshalJSON decodes a vendor and normalizes a missing services list to empty.
func (v *Vendor) UnmarshalJSON(data []byte) error {
	type alias Vendor
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Services == nil {
		a.Services = []string{}
	}
	*v = Vendor(a)
	return nil
}
