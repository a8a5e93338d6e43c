package vmsclient

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	vmsapimodels "vms-console/models/api/vms"
)

func (i impl) Login(ctx context.Context, request vmsapimodels.LoginRequest) (*vmsapimodels.LoginResponse, error) {
	resp := vmsapimodels.LoginResponse{}
	err := i.do(ctx, "auth.login", http.MethodPost, loginPath, request, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("сервис вакансий не вернул токен")
	}
	return &resp, nil
}

func (i impl) VendorLogin(ctx context.Context, request vmsapimodels.LoginRequest) (*vmsapimodels.VendorLoginResponse, error) {
	resp := vmsapimodels.VendorLoginResponse{}
	err := i.do(ctx, "auth.vendor_login", http.MethodPost, vendorLoginPath, request, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("сервис вакансий не вернул токен")
	}
	return &resp, nil
}

func (i impl) SendOtp(ctx context.Context, email string) error {
	request := vmsapimodels.SendOtpRequest{
		Email: email,
	}
	return i.do(ctx, "auth.send_otp", http.MethodPost, sendOtpPath, request, nil)
}

func (i impl) VerifyOtp(ctx context.Context, request vmsapimodels.VerifyOtpRequest) error {
	return i.do(ctx, "auth.verify_otp", http.MethodPost, verifyOtpPath, request, nil)
}
