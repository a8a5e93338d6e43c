package assignment

import (
	vmsapimodels "vms-console/models/api/vms"
)

// Partition назначенные = assigned (без дублей, данные из universe, если есть),
// не назначенные = universe без назначенных в порядке universe
func Partition(universe, assigned []vmsapimodels.Vendor) (assignedOut, unassigned []vmsapimodels.Vendor) {
	byID := make(map[string]vmsapimodels.Vendor, len(universe))
	for _, v := range universe {
		byID[v.ID] = v
	}
	isAssigned := make(map[string]bool, len(assigned))
	assignedOut = make([]vmsapimodels.Vendor, 0, len(assigned))
	for _, v := range assigned {
		if isAssigned[v.ID] {
			continue
		}
		isAssigned[v.ID] = true
		if full, ok := byID[v.ID]; ok {
			v = full
		}
		assignedOut = append(assignedOut, v)
	}
	unassigned = make([]vmsapimodels.Vendor, 0, len(universe))
	seen := make(map[string]bool, len(universe))
	for _, v := range universe {
		if isAssigned[v.ID] || seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		unassigned = append(unassigned, v)
	}
	return assignedOut, unassigned
}

func indexOf(list []vmsapimodels.Vendor, vendorID string) int {
	for idx, v := range list {
		if v.ID == vendorID {
			return idx
		}
	}
	return -1
}

func remove(list []vmsapimodels.Vendor, idx int) []vmsapimodels.Vendor {
	result := make([]vmsapimodels.Vendor, 0, len(list)-1)
	result = append(result, list[:idx]...)
	return append(result, list[idx+1:]...)
}

func cloneVendors(list []vmsapimodels.Vendor) []vmsapimodels.Vendor {
	result := make([]vmsapimodels.Vendor, len(list))
	copy(result, list)
	return result
}
