package models

type UserRole string

const (
	AdminRole  UserRole = "ADMIN"
	VendorRole UserRole = "VENDOR"
)

var roleHumanName = map[UserRole]string{
	AdminRole:  "Admin",
	VendorRole: "Vendor",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}
