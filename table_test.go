package sqlcsv

import (
	"testing"

	"github.com/nao1215/sqlcsv/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestSourceTable_Statements(t *testing.T) {
	t.Parallel()

	table := newSourceTable(model.NewTableName(2), "in.csv",
		model.NewHeader([]string{"id", ` first name `, `say "hi"`}), nil)

	assert.Equal(t,
		`CREATE TABLE "table2" ("id" TEXT NOT NULL DEFAULT '', "first name" TEXT NOT NULL DEFAULT '', "say ""hi""" TEXT NOT NULL DEFAULT '')`,
		table.createStatement())
	assert.Equal(t, `"id", "first name", "say ""hi"""`, table.quotedColumns())
}
