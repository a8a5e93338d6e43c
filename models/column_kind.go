package models

type ColumnKind string

const (
	ColumnText     ColumnKind = "TEXT"
	ColumnDate     ColumnKind = "DATE"
	ColumnToggle   ColumnKind = "TOGGLE"
	ColumnChipList ColumnKind = "CHIP_LIST"
	ColumnActions  ColumnKind = "ACTIONS"
)

type RowAction string

const (
	ActionEdit   RowAction = "edit"
	ActionDelete RowAction = "delete"
	ActionAssign RowAction = "assign"
	ActionView   RowAction = "view"
)
