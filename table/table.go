package table

import (
	"fmt"
)

// ErrSlotOutOfRange reports a slot outside a level's table.
// A broken indexer produces it; the encoder panics with this value.
type ErrSlotOutOfRange struct {
	Level int
	Slot  uint32
	Rows  int
}

func (e *ErrSlotOutOfRange) Error() string {
	return fmt.Sprintf("slot %d out of range for level %d (rows=%d)", e.Slot, e.Level, e.Rows)
}

// Table is the feature table of one level: Rows() rows of Features() values.
type Table struct {
	level    int
	rows     int
	features int
	data     []float32
}

// Level returns the level index of the table.
func (t *Table) Level() int { return t.level }

// Rows returns the number of slots.
func (t *Table) Rows() int { return t.rows }

// Features returns the feature vector length.
func (t *Table) Features() int { return t.features }

// Data returns the row-major backing slice. Writes go straight to the arena.
func (t *Table) Data() []float32 { return t.data }

// Bytes returns the memory footprint of the table values.
func (t *Table) Bytes() int64 { return int64(len(t.data)) * 4 }

// Row returns the feature vector stored at slot. The slice aliases the table.
// It panics with *ErrSlotOutOfRange if slot >= Rows().
func (t *Table) Row(slot uint32) []float32 {
	if int64(slot) >= int64(t.rows) {
		panic(&ErrSlotOutOfRange{Level: t.level, Slot: slot, Rows: t.rows})
	}
	off := int(slot) * t.features
	return t.data[off : off+t.features : off+t.features]
}

// Set copies values into the row at slot.
func (t *Table) Set(slot uint32, values []float32) error {
	if len(values) != t.features {
		return fmt.Errorf("set slot %d: got %d values, want %d", slot, len(values), t.features)
	}
	if int64(slot) >= int64(t.rows) {
		return &ErrSlotOutOfRange{Level: t.level, Slot: slot, Rows: t.rows}
	}
	copy(t.Row(slot), values)
	return nil
}

// Fill sets every value of the table to v.
func (t *Table) Fill(v float32) {
	for i := range t.data {
		t.data[i] = v
	}
}
