package xlsexport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"vms-console/lib/table"
	vmsapimodels "vms-console/models/api/vms"
)

func TestExportTable(t *testing.T) {
	jobs := []vmsapimodels.JobDescription{
		{ID: "J1", Title: "Go", Description: "backend", Verified: true, AssignedVendors: []vmsapimodels.Vendor{{ID: "V1", Username: "acme"}}},
		{ID: "J2", Title: "QA", Description: "tests"},
	}
	rendered, err := table.Render(table.JobColumns, jobs)
	require.NoError(t, err)

	buf, err := impl{}.ExportTable("Jobs", rendered)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Jobs")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Job Title", "Description", "Assigned Vendors", "Status"}, rows[0])
	require.Equal(t, []string{"Go", "backend", "acme", "Verified"}, rows[1])
	require.Equal(t, "Not Verified", rows[2][3])
}
