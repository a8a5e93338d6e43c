package table

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"vms-console/models"
)

const DateLayout = "2006-01-02"

// Column описание колонки. Заполняется аксессор, соответствующий Kind
type Column[T any] struct {
	Key     string
	Title   string
	Kind    models.ColumnKind
	Text    func(row T) string
	Date    func(row T) *time.Time
	Toggle  func(row T) bool
	Chips   func(row T) []string
	Actions []models.RowAction
}

type Header struct {
	Key   string            `json:"key"`
	Title string            `json:"title"`
	Kind  models.ColumnKind `json:"kind"`
}

type Cell struct {
	Kind models.ColumnKind `json:"kind"`
	// Text текстовое представление, используется в выгрузках
	Text    string             `json:"text"`
	Checked *bool              `json:"checked,omitempty"`
	Chips   []string           `json:"chips,omitempty"`
	Actions []models.RowAction `json:"actions,omitempty"`
}

type Row struct {
	ID    string `json:"id"`
	Cells []Cell `json:"cells"`
}

type Table struct {
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
}

type identified interface {
	GetID() string
}

var ErrUnknownKind = errors.New("неизвестный тип колонки")

// RenderCell отрисовка ячейки по типу колонки
func RenderCell[T any](column Column[T], row T) (Cell, error) {
	cell := Cell{Kind: column.Kind}
	switch column.Kind {
	case models.ColumnText:
		if column.Text == nil {
			return cell, errors.Errorf("колонка %v: не задан текст", column.Key)
		}
		cell.Text = column.Text(row)
	case models.ColumnDate:
		if column.Date == nil {
			return cell, errors.Errorf("колонка %v: не задана дата", column.Key)
		}
		if date := column.Date(row); date != nil && !date.IsZero() {
			cell.Text = date.Format(DateLayout)
		}
	case models.ColumnToggle:
		if column.Toggle == nil {
			return cell, errors.Errorf("колонка %v: не задан флаг", column.Key)
		}
		checked := column.Toggle(row)
		cell.Checked = &checked
		cell.Text = ToggleText(checked)
	case models.ColumnChipList:
		if column.Chips == nil {
			return cell, errors.Errorf("колонка %v: не задан список", column.Key)
		}
		cell.Chips = column.Chips(row)
		cell.Text = strings.Join(cell.Chips, ", ")
	case models.ColumnActions:
		cell.Actions = column.Actions
	default:
		return cell, errors.Wrapf(ErrUnknownKind, "колонка %v: %v", column.Key, column.Kind)
	}
	return cell, nil
}

func ToggleText(checked bool) string {
	if checked {
		return "Verified"
	}
	return "Not Verified"
}

func Render[T identified](columns []Column[T], rows []T) (Table, error) {
	result := Table{
		Headers: make([]Header, 0, len(columns)),
		Rows:    make([]Row, 0, len(rows)),
	}
	for _, column := range columns {
		result.Headers = append(result.Headers, Header{Key: column.Key, Title: column.Title, Kind: column.Kind})
	}
	for _, item := range rows {
		row := Row{
			ID:    item.GetID(),
			Cells: make([]Cell, 0, len(columns)),
		}
		for _, column := range columns {
			cell, err := RenderCell(column, item)
			if err != nil {
				return Table{}, err
			}
			row.Cells = append(row.Cells, cell)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// ExportColumns колонки без действий, для выгрузок
func (t Table) ExportColumns() []int {
	result := []int{}
	for idx, h := range t.Headers {
		if h.Kind != models.ColumnActions {
			result = append(result, idx)
		}
	}
	return result
}
