package vmsapimodels

type JobDescription struct {
	ID              string   `json:"_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Verified        bool     `json:"verified"`
	AssignedVendors []Vendor `json:"assignedVendors"`
}

func (j JobDescription) GetID() string {
	return j.ID
}

// VendorUsernames имена назначенных вендоров, в порядке назначения
func (j JobDescription) VendorUsernames() []string {
	result := make([]string, 0, len(j.AssignedVendors))
	for _, v := range j.AssignedVendors {
		result = append(result, v.Username)
	}
	return result
}

type JobCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type JobUpdateRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Verified        bool     `json:"verified"`
	AssignedVendors []Vendor `json:"assignedVendors"`
}

type JobStatusRequest struct {
	ID       string `json:"id"`
	Verified bool   `json:"verified"`
}

type AssignRequest struct {
	JobID    string `json:"jobId"`
	VendorID string `json:"vendorId"`
}

type SendEmailRequest struct {
	VendorID string `json:"vendorId"`
	JobID    string `json:"jobId"`
	JobTitle string `json:"jobTitle"`
}
