package models

import "testing"

func TestRecordCellAccessors(t *testing.T) {
	rec := NewRecord()
	rec.SetCell("tip", 2.5)
	rec.SetCell("surge_applied", true)
	rec.SetCell("note", "ok")

	if f, ok := rec.Float("tip"); !ok || f != 2.5 {
		t.Errorf("Float(tip) = %v, %v; expected 2.5, true", f, ok)
	}
	if b, ok := rec.Bool("surge_applied"); !ok || !b {
		t.Errorf("Bool(surge_applied) = %v, %v; expected true, true", b, ok)
	}
	if _, ok := rec.Float("note"); ok {
		t.Error("Float(note) on a string cell should report not-ok")
	}
	if _, ok := rec.Float("absent"); ok {
		t.Error("Float(absent) should report not-ok")
	}

	rec.ClearCell("tip")
	if _, ok := rec.Cell("tip"); ok {
		t.Error("cell should be missing after ClearCell")
	}
}

func TestRecordClone(t *testing.T) {
	rec := NewRecord()
	rec.SetCell("tip", 2.5)

	clone := rec.Clone()
	clone.SetCell("tip", 9.9)

	if f, _ := rec.Float("tip"); f != 2.5 {
		t.Errorf("clone mutation leaked into original: tip = %v", f)
	}
}

func TestTableHasColumn(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	if !table.HasColumn("a") {
		t.Error("expected HasColumn(a) = true")
	}
	if table.HasColumn("c") {
		t.Error("expected HasColumn(c) = false")
	}
}

func TestTableWithColumnsSharesRecords(t *testing.T) {
	table := NewTable([]string{"a"})
	table.AppendRecord(NewRecordWithData(map[string]any{"a": "1"}))

	renamed := table.WithColumns([]string{"x"})
	if renamed.NumRecords() != 1 {
		t.Fatalf("expected 1 record, got %d", renamed.NumRecords())
	}
	if renamed.Records[0] != table.Records[0] {
		t.Error("expected record pointers to be shared")
	}

	renamed.Columns[0] = "y"
	if table.Columns[0] != "a" {
		t.Error("column rename leaked into original table")
	}
}
