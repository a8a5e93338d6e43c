package profilehandler

import (
	"context"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"vms-console/lib/utils/validation"
	"vms-console/lib/workspace"
	"vms-console/models"
	profileapimodels "vms-console/models/api/profile"
	vmsapimodels "vms-console/models/api/vms"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

type Image struct {
	Name string
	Data []byte
}

type Provider interface {
	Get(ctx context.Context, ws *workspace.Workspace) (profileapimodels.ProfileView, error)
	Update(ctx context.Context, ws *workspace.Workspace, data profileapimodels.ProfileUpdate, image *Image) (profileapimodels.ProfileView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) Get(ctx context.Context, ws *workspace.Workspace) (profileapimodels.ProfileView, error) {
	profile, err := ws.Client.GetProfile(ctx)
	if err != nil {
		return profileapimodels.ProfileView{}, errors.Wrap(err, "ошибка получения профиля")
	}
	return profileapimodels.Convert(*profile), nil
}

func (i impl) Update(ctx context.Context, ws *workspace.Workspace, data profileapimodels.ProfileUpdate, image *Image) (profileapimodels.ProfileView, error) {
	if err := validation.Merge(data.Validate(), CheckImage(image)); err != nil {
		return profileapimodels.ProfileView{}, err
	}
	current, err := ws.Client.GetProfile(ctx)
	if err != nil {
		return profileapimodels.ProfileView{}, errors.Wrap(err, "ошибка получения профиля")
	}
	request := vmsapimodels.ProfileUpdateRequest{
		AdminID:  current.ID,
		Username: data.Username,
		Email:    data.Email,
		Mobile:   data.Mobile,
		Location: data.Location,
	}
	if image != nil {
		request.ImageName = image.Name
		request.Image = image.Data
	}
	updated, err := ws.Client.UpdateProfile(ctx, request)
	if err != nil {
		log.
			WithField("session_id", ws.SessionID).
			WithError(err).
			Error("ошибка изменения профиля")
		return profileapimodels.ProfileView{}, errors.Wrap(err, "ошибка изменения профиля")
	}
	ws.Notify(models.ToastCodeOperationDone, "Profile updated successfully")
	return profileapimodels.Convert(*updated), nil
}

// CheckImage тип определяется по содержимому, а не по имени файла
func CheckImage(image *Image) error {
	if image == nil || len(image.Data) == 0 {
		return nil
	}
	if !mimetype.EqualsAny(mimetype.Detect(image.Data).String(), allowedImageTypes...) {
		return validation.Field("image", "Only image files are allowed")
	}
	return nil
}
