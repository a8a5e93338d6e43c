package authapimodels

import (
	"vms-console/lib/utils/validation"
)

type LoginRequest struct {
	Username       string  `json:"username" validate:"required,min=2,alphanum"`
	Password       string  `json:"password" validate:"required,min=6,haslower,hasupper,hasdigit,hasspecial,nospace"`
	RecaptchaToken *string `json:"recaptchaToken"` // токен анти-бот виджета, если он доступен
}

var passwordMessages = validation.Messages{
	"required":   "Password is required",
	"min":        "Password must be at least 6 characters",
	"haslower":   "Password must contain at least one lowercase letter",
	"hasupper":   "Password must contain at least one uppercase letter",
	"hasdigit":   "Password must contain at least one number",
	"hasspecial": "Password must contain at least one special character",
	"nospace":    "No spaces allowed",
}

// PasswordMessages тексты для поля пароля с именем field
func PasswordMessages(field string) validation.Messages {
	result := validation.Messages{}
	for tag, msg := range passwordMessages {
		result[field+"."+tag] = msg
	}
	return result
}

func (r LoginRequest) Validate() error {
	messages := PasswordMessages("password")
	messages["username.required"] = "Username is required"
	messages["username.min"] = "Username must be at least 2 characters"
	messages["username.alphanum"] = "No special characters or spaces allowed"
	return validation.Struct(r, messages)
}

type SendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r SendOtpRequest) Validate() error {
	return validation.Struct(r, validation.Messages{
		"email.required": "Email is required",
		"email.email":    "Invalid email address",
	})
}

type VerifyOtpRequest struct {
	Otp         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,haslower,hasupper,hasdigit,hasspecial,nospace"`
}

func (r VerifyOtpRequest) Validate() error {
	messages := PasswordMessages("newPassword")
	messages["otp.required"] = "OTP is required"
	return validation.Struct(r, messages)
}
