package table

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"vms-console/models"
	vmsapimodels "vms-console/models/api/vms"
)

func TestRender(t *testing.T) {
	t.Run("jobs", func(t *testing.T) {
		jobs := []vmsapimodels.JobDescription{
			{
				ID:              "J1",
				Title:           "Go developer",
				Description:     "backend",
				Verified:        true,
				AssignedVendors: []vmsapimodels.Vendor{{ID: "V1", Username: "acme"}, {ID: "V2", Username: "globex"}},
			},
		}
		result, err := Render(JobColumns, jobs)
		require.NoError(t, err)
		require.Len(t, result.Headers, 5)
		require.Len(t, result.Rows, 1)
		row := result.Rows[0]
		require.Equal(t, "J1", row.ID)
		require.Equal(t, "Go developer", row.Cells[0].Text)
		require.Equal(t, []string{"acme", "globex"}, row.Cells[2].Chips)
		require.Equal(t, "acme, globex", row.Cells[2].Text)
		require.NotNil(t, row.Cells[3].Checked)
		require.True(t, *row.Cells[3].Checked)
		require.Equal(t, "Verified", row.Cells[3].Text)
		require.Equal(t, []models.RowAction{models.ActionAssign, models.ActionEdit, models.ActionDelete}, row.Cells[4].Actions)
		require.Equal(t, []int{0, 1, 2, 3}, result.ExportColumns())
	})

	t.Run("vendors with date", func(t *testing.T) {
		registered := time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC)
		vendors := []vmsapimodels.Vendor{
			{ID: "V1", Username: "acme", Email: "a@acme.com", RegistrationDate: &registered},
			{ID: "V2", Username: "globex"},
		}
		result, err := Render(VendorColumns, vendors)
		require.NoError(t, err)
		require.Equal(t, "2024-07-05", result.Rows[0].Cells[2].Text)
		require.Equal(t, "", result.Rows[1].Cells[2].Text)
		require.Equal(t, "Not Verified", result.Rows[1].Cells[3].Text)
	})

	t.Run("unknown kind is an error", func(t *testing.T) {
		columns := []Column[vmsapimodels.Vendor]{{Key: "x", Kind: models.ColumnKind("SPARKLINE")}}
		_, err := Render(columns, []vmsapimodels.Vendor{{ID: "V1"}})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnknownKind))
	})

	t.Run("missing accessor is an error", func(t *testing.T) {
		columns := []Column[vmsapimodels.Vendor]{{Key: "x", Kind: models.ColumnText}}
		_, err := Render(columns, []vmsapimodels.Vendor{{ID: "V1"}})
		require.Error(t, err)
	})
}
