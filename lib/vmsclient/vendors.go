package vmsclient

import (
	"context"
	"fmt"
	"net/http"

	vmsapimodels "vms-console/models/api/vms"
)

func (i impl) ListVendors(ctx context.Context, page, limit int) (*vmsapimodels.VendorListResponse, error) {
	resp := vmsapimodels.VendorListResponse{}
	err := i.do(ctx, "vendors.list", http.MethodGet, fmt.Sprintf(vendorListPath, page, limit), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) GetVendor(ctx context.Context, id string) (*vmsapimodels.Vendor, error) {
	resp := vmsapimodels.Vendor{}
	err := i.do(ctx, "vendors.get", http.MethodGet, fmt.Sprintf(vendorDetailPath, id), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UpdateVendorVerified(ctx context.Context, id string, verified bool) error {
	request := vmsapimodels.VendorVerifiedRequest{
		Verified: verified,
	}
	return i.do(ctx, "vendors.update_verified", http.MethodPut, fmt.Sprintf(vendorVerifiedPath, id), request, nil)
}

func (i impl) CreateVendor(ctx context.Context, request vmsapimodels.VendorCreateRequest) error {
	return i.do(ctx, "vendors.create", http.MethodPost, createPath, request, nil)
}
