package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	kvTableName      = "kv"
	historyTableName = "history"
)

var (
	// kvColumns holds the namespaced key-value entries.
	kvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	kvTable = &schema.Table{
		Name:       kvTableName,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	// historyColumns holds the append-only answer log.
	historyColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "question_id", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "ts_ms", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString, Default: ""},
	}
	historyTable = &schema.Table{
		Name:       historyTableName,
		Columns:    historyColumns,
		PrimaryKey: []*schema.Column{historyColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "history_question_id",
				Unique:  false,
				Columns: []*schema.Column{historyColumns[2]},
			},
			{
				Name:    "history_session_id",
				Unique:  false,
				Columns: []*schema.Column{historyColumns[5]},
			},
		},
	}

	tables = []*schema.Table{kvTable, historyTable}
)

// migrate creates missing tables and indexes. Existing data is kept.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
