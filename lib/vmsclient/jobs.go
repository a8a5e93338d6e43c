package vmsclient

import (
	"context"
	"fmt"
	"net/http"

	vmsapimodels "vms-console/models/api/vms"
)

func (i impl) ListJobs(ctx context.Context, page, limit int) ([]vmsapimodels.JobDescription, error) {
	resp := []vmsapimodels.JobDescription{}
	err := i.do(ctx, "jobs.list", http.MethodGet, fmt.Sprintf(jobListPath, page, limit), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (i impl) GetJob(ctx context.Context, id string) (*vmsapimodels.JobDescription, error) {
	resp := vmsapimodels.JobDescription{}
	err := i.do(ctx, "jobs.get", http.MethodGet, fmt.Sprintf(jobDetailPath, id), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) CreateJob(ctx context.Context, request vmsapimodels.JobCreateRequest) error {
	return i.do(ctx, "jobs.create", http.MethodPost, createPath, request, nil)
}

func (i impl) UpdateJob(ctx context.Context, id string, request vmsapimodels.JobUpdateRequest) error {
	return i.do(ctx, "jobs.update", http.MethodPut, fmt.Sprintf(jobUpdatePath, id), request, nil)
}

func (i impl) DeleteJob(ctx context.Context, id string) error {
	return i.do(ctx, "jobs.delete", http.MethodDelete, fmt.Sprintf(jobDeletePath, id), nil, nil)
}

func (i impl) UpdateJobStatus(ctx context.Context, id string, verified bool) error {
	request := vmsapimodels.JobStatusRequest{
		ID:       id,
		Verified: verified,
	}
	return i.do(ctx, "jobs.update_status", http.MethodPut, fmt.Sprintf(jobStatusPath, id), request, nil)
}

func (i impl) AssignVendor(ctx context.Context, jobID, vendorID string) error {
	request := vmsapimodels.AssignRequest{
		JobID:    jobID,
		VendorID: vendorID,
	}
	return i.do(ctx, "jobs.assign_vendor", http.MethodPut, assignPath, request, nil)
}

func (i impl) UnassignVendor(ctx context.Context, jobID, vendorID string) error {
	request := vmsapimodels.AssignRequest{
		JobID:    jobID,
		VendorID: vendorID,
	}
	return i.do(ctx, "jobs.unassign_vendor", http.MethodPut, unassignPath, request, nil)
}

func (i impl) SendEmail(ctx context.Context, request vmsapimodels.SendEmailRequest) error {
	return i.do(ctx, "jobs.send_email", http.MethodPost, sendEmailPath, request, nil)
}
