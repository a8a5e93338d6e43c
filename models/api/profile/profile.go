package profileapimodels

import (
	"vms-console/lib/utils/validation"
	vmsapimodels "vms-console/models/api/vms"
)

type ProfileView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Location string `json:"location"`
	ImageUrl string `json:"image_url,omitempty"`
	Role     string `json:"role,omitempty"`
}

func Convert(rec vmsapimodels.AdminProfile) ProfileView {
	return ProfileView{
		ID:       rec.ID,
		Username: rec.Username,
		Email:    rec.Email,
		Mobile:   rec.Mobile,
		Location: rec.Location,
		ImageUrl: rec.ImageUrl,
		Role:     rec.Role,
	}
}

// ProfileUpdate поля multipart формы, изображение передается отдельно
type ProfileUpdate struct {
	Username string `json:"username" form:"username" validate:"required,latinalpha"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Mobile   string `json:"mobile" form:"mobile" validate:"required,len=10,numeric"`
	Location string `json:"location" form:"location" validate:"required"`
}

func (r ProfileUpdate) Validate() error {
	return validation.Struct(r, validation.Messages{
		"username.required":   "Username is required",
		"username.latinalpha": "Username should contain only alphabets",
		"email.required":      "Email is required",
		"email.email":         "Invalid email address",
		"mobile.required":     "Mobile number is required",
		"mobile":              "Mobile number should be exactly 10 digits",
		"location.required":   "Location is required",
	})
}
