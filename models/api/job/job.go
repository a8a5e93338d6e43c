package jobapimodels

import (
	"vms-console/lib/table"
	"vms-console/lib/utils/validation"
	apimodels "vms-console/models/api"
	vmsapimodels "vms-console/models/api/vms"
)

type JobFilter struct {
	Search  string `json:"search" query:"search"`   // подстрока названия
	Refresh bool   `json:"refresh" query:"refresh"` // перезагрузить список из сервиса
	apimodels.Pagination
}

type JobView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Verified        bool     `json:"verified"`
	AssignedVendors []string `json:"assigned_vendors"` // имена назначенных вендоров
}

func Convert(rec vmsapimodels.JobDescription) JobView {
	return JobView{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		Verified:        rec.Verified,
		AssignedVendors: rec.VendorUsernames(),
	}
}

func ConvertList(list []vmsapimodels.JobDescription) []JobView {
	result := make([]JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, Convert(rec))
	}
	return result
}

type JobData struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

var jobMessages = validation.Messages{
	"title.required":       "Job title is required",
	"title.max":            "Job title is too long",
	"description.required": "Description is required",
}

func (r JobData) Validate() error {
	return validation.Struct(r, jobMessages)
}

type JobUpdate struct {
	JobData
	Verified *bool `json:"verified"` // если не указан, остается текущее значение
}

func (r JobUpdate) Validate() error {
	return r.JobData.Validate()
}

type JobPage struct {
	Items []JobView   `json:"items"`
	Table table.Table `json:"table"` // строки для отрисовки таблицы
}
