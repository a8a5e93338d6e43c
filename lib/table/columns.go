package table

import (
	"time"

	"vms-console/models"
	vmsapimodels "vms-console/models/api/vms"
)

var JobColumns = []Column[vmsapimodels.JobDescription]{
	{
		Key:   "title",
		Title: "Job Title",
		Kind:  models.ColumnText,
		Text:  func(j vmsapimodels.JobDescription) string { return j.Title },
	},
	{
		Key:   "description",
		Title: "Description",
		Kind:  models.ColumnText,
		Text:  func(j vmsapimodels.JobDescription) string { return j.Description },
	},
	{
		Key:   "assignedVendors",
		Title: "Assigned Vendors",
		Kind:  models.ColumnChipList,
		Chips: func(j vmsapimodels.JobDescription) []string { return j.VendorUsernames() },
	},
	{
		Key:    "verified",
		Title:  "Status",
		Kind:   models.ColumnToggle,
		Toggle: func(j vmsapimodels.JobDescription) bool { return j.Verified },
	},
	{
		Key:     "actions",
		Title:   "Actions",
		Kind:    models.ColumnActions,
		Actions: []models.RowAction{models.ActionAssign, models.ActionEdit, models.ActionDelete},
	},
}

var VendorColumns = []Column[vmsapimodels.Vendor]{
	{
		Key:   "username",
		Title: "Vendor",
		Kind:  models.ColumnText,
		Text:  func(v vmsapimodels.Vendor) string { return v.Username },
	},
	{
		Key:   "email",
		Title: "Email",
		Kind:  models.ColumnText,
		Text:  func(v vmsapimodels.Vendor) string { return v.Email },
	},
	{
		Key:   "registrationDate",
		Title: "Registration Date",
		Kind:  models.ColumnDate,
		Date:  func(v vmsapimodels.Vendor) *time.Time { return v.RegistrationDate },
	},
	{
		Key:    "verified",
		Title:  "Verified",
		Kind:   models.ColumnToggle,
		Toggle: func(v vmsapimodels.Vendor) bool { return v.Verified },
	},
	{
		Key:     "actions",
		Title:   "Actions",
		Kind:    models.ColumnActions,
		Actions: []models.RowAction{models.ActionView},
	},
}

// AssignedJobColumns таблица вакансий в кабинете вендора
var AssignedJobColumns = []Column[vmsapimodels.AssignedJob]{
	{
		Key:   "jobTitle",
		Title: "Job Title",
		Kind:  models.ColumnText,
		Text:  func(j vmsapimodels.AssignedJob) string { return j.JobTitle },
	},
}
