// internal/recommender/vendor_index.go
package recommender

import "eventhub-workers/internal/models"

// IsEligible reports whether a vendor may be recommended at all.
func IsEligible(v models.Vendor) bool {
	return v.Verified
}

// IndexVendor maps a vendor to its service and location tokens.
func IndexVendor(v models.Vendor) FeatureSet {
	set := make(FeatureSet, len(v.Services)+1)
	for _, s := range v.Services {
		set.Add(KindService, s)
	}
	set.Add(KindLocation, v.Location)
	return set
}

// IndexedVendor pairs a candidate with its feature set.
type IndexedVendor struct {
	Vendor   models.Vendor
	Features FeatureSet
}

// BuildIndex drops ineligible vendors and indexes the rest, preserving input order.
func BuildIndex(vendors []models.Vendor) []IndexedVendor {
	index := make([]IndexedVendor, 0, len(vendors))
	for _, v := range vendors {
		if !IsEligible(v) {
			continue
		}
		index = append(index, IndexedVendor{Vendor: v, Features: IndexVendor(v)})
	}
	return index
}
