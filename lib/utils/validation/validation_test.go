package validation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type form struct {
	Username string `json:"username" validate:"required,min=2,alphanum"`
	Password string `json:"password" validate:"required,min=6,haslower,hasupper,hasdigit,hasspecial,nospace"`
	Name     string `json:"name" validate:"omitempty,latinalpha"`
}

var formMessages = Messages{
	"username.required":   "Username is required",
	"username.min":        "Username must be at least 2 characters",
	"password.hasupper":   "Password must contain at least one uppercase letter",
	"password.hasspecial": "Password must contain at least one special character",
	"password.nospace":    "No spaces allowed",
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Struct(form{Username: "admin1", Password: "Secret1!", Name: "John"}, formMessages))
	})

	t.Run("field names from json tags and first rule wins", func(t *testing.T) {
		err := Struct(form{Username: "a", Password: "secret1!"}, formMessages)
		vErr, ok := IsValidationError(err)
		require.True(t, ok)
		require.Equal(t, "Username must be at least 2 characters", vErr.Fields["username"])
		require.Equal(t, "Password must contain at least one uppercase letter", vErr.Fields["password"])
		require.Len(t, vErr.Fields, 2)
	})

	t.Run("custom rules", func(t *testing.T) {
		err := Struct(form{Username: "admin", Password: "Secret12"}, formMessages)
		vErr, ok := IsValidationError(err)
		require.True(t, ok)
		require.Equal(t, "Password must contain at least one special character", vErr.Fields["password"])

		err = Struct(form{Username: "admin", Password: "Sec ret1!"}, formMessages)
		vErr, ok = IsValidationError(err)
		require.True(t, ok)
		require.Equal(t, "No spaces allowed", vErr.Fields["password"])

		err = Struct(form{Username: "admin", Password: "Secret1!", Name: "J0hn"}, formMessages)
		vErr, ok = IsValidationError(err)
		require.True(t, ok)
		require.Equal(t, "Invalid name", vErr.Fields["name"])
	})

	t.Run("merge", func(t *testing.T) {
		err := Merge(nil, Field("image", "Only image files are allowed"), Field("image", "other"))
		vErr, ok := IsValidationError(err)
		require.True(t, ok)
		require.Equal(t, "Only image files are allowed", vErr.Fields["image"])
		require.NoError(t, Merge(nil, nil))

		plain := errors.New("boom")
		require.Equal(t, plain, Merge(plain))
	})
}
