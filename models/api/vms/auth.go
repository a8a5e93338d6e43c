package vmsapimodels

type LoginRequest struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	RecaptchaToken *string `json:"recaptchaToken"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type VendorLoginResponse struct {
	Token    string `json:"token"`
	VendorID string `json:"vendorId"`
}

type SendOtpRequest struct {
	Email string `json:"email"`
}

type VerifyOtpRequest struct {
	Email       string `json:"email"`
	Otp         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}
