package vmsclient

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
	vmsapimodels "vms-console/models/api/vms"
)

func (i impl) GetProfile(ctx context.Context) (*vmsapimodels.AdminProfile, error) {
	resp := vmsapimodels.AdminProfile{}
	err := i.do(ctx, "profile.get", http.MethodGet, profilePath, nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UpdateProfile(ctx context.Context, request vmsapimodels.ProfileUpdateRequest) (*vmsapimodels.AdminProfile, error) {
	body, contentType, err := profileForm(request)
	if err != nil {
		return nil, err
	}
	c := call{
		operation:   "profile.update",
		method:      http.MethodPut,
		uri:         i.host + profilePath,
		body:        body,
		contentType: contentType,
	}
	resp := vmsapimodels.ProfileUpdateResponse{}
	err = i.sendRequest(ctx, c, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Admin, nil
}

func profileForm(request vmsapimodels.ProfileUpdateRequest) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	fields := [][2]string{
		{"adminId", request.AdminID},
		{"username", request.Username},
		{"email", request.Email},
		{"mobile", request.Mobile},
		{"location", request.Location},
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", errors.Wrap(err, "ошибка формирования формы профиля")
		}
	}
	if len(request.Image) != 0 {
		part, err := writer.CreateFormFile("image", request.ImageName)
		if err != nil {
			return nil, "", errors.Wrap(err, "ошибка формирования формы профиля")
		}
		if _, err = part.Write(request.Image); err != nil {
			return nil, "", errors.Wrap(err, "ошибка формирования формы профиля")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "ошибка формирования формы профиля")
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
