package vmsapimodels

import (
	"bytes"
	"encoding/json"
	"time"
)

type Vendor struct {
	ID                      string        `json:"_id"`
	Username                string        `json:"username"`
	Email                   string        `json:"email"`
	RegistrationDate        *time.Time    `json:"registrationDate,omitempty"`
	Verified                bool          `json:"verified"`
	AssignedJobDescriptions []AssignedJob `json:"assignedJobDescriptions,omitempty"`
}

func (v Vendor) GetID() string {
	return v.ID
}

type AssignedJob struct {
	JobID    string `json:"jobId,omitempty"`
	JobTitle string `json:"jobTitle"`
}

func (j AssignedJob) GetID() string {
	return j.JobID
}

type VendorListResponse struct {
	Vendors      []Vendor `json:"vendors"`
	TotalVendors int64    `json:"totalVendors"`
}

// UnmarshalJSON список вендоров без пагинации приходит голым массивом
func (r *VendorListResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) != 0 && trimmed[0] == '[' {
		vendors := []Vendor{}
		if err := json.Unmarshal(trimmed, &vendors); err != nil {
			return err
		}
		r.Vendors = vendors
		r.TotalVendors = int64(len(vendors))
		return nil
	}
	type plain VendorListResponse
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = VendorListResponse(p)
	return nil
}

type VendorCreateRequest struct {
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Verified         bool      `json:"verified"`
	RegistrationDate time.Time `json:"registrationDate"`
	Password         string    `json:"password"`
}

type VendorVerifiedRequest struct {
	Verified bool `json:"verified"`
}
