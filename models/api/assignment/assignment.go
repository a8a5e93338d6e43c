package assignmentapimodels

import (
	"vms-console/lib/assignment"
	vmsapimodels "vms-console/models/api/vms"
)

type VendorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AssignmentView struct {
	JobID      string           `json:"job_id"`
	JobTitle   string           `json:"job_title"`
	State      assignment.State `json:"state"`
	Assigned   []VendorRef      `json:"assigned_vendors"`
	Unassigned []VendorRef      `json:"unassigned_vendors"`
	Changed    *bool            `json:"changed,omitempty"` // false, если перенос ничего не изменил
}

func refs(list []vmsapimodels.Vendor) []VendorRef {
	result := make([]VendorRef, 0, len(list))
	for _, v := range list {
		result = append(result, VendorRef{ID: v.ID, Username: v.Username, Email: v.Email})
	}
	return result
}

func Convert(snapshot assignment.Snapshot) AssignmentView {
	return AssignmentView{
		JobID:      snapshot.JobID,
		JobTitle:   snapshot.JobTitle,
		State:      snapshot.State,
		Assigned:   refs(snapshot.Assigned),
		Unassigned: refs(snapshot.Unassigned),
	}
}

func ConvertMove(snapshot assignment.Snapshot, changed bool) AssignmentView {
	view := Convert(snapshot)
	view.Changed = &changed
	return view
}
