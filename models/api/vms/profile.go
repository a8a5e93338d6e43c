package vmsapimodels

type AdminProfile struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Location string `json:"location"`
	ImageUrl string `json:"imageUrl,omitempty"`
	Role     string `json:"role,omitempty"`
}

type ProfileUpdateResponse struct {
	Admin AdminProfile `json:"admin"`
}

// ProfileUpdateRequest отправляется multipart формой
type ProfileUpdateRequest struct {
	AdminID   string
	Username  string
	Email     string
	Mobile    string
	Location  string
	ImageName string
	Image     []byte
}

type ErrorData struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (e ErrorData) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Msg
}
