package table

import (
	"fmt"

	"github.com/hupe1980/hashgrid/internal/conv"
	"github.com/hupe1980/hashgrid/internal/mem"
)

// MaxLog2Rows bounds the per-level table size.
const MaxLog2Rows = 30

// UniformSource fills a slice with uniform values in [lo, hi).
type UniformSource interface {
	FillUniformRange(dst []float32, lo, hi float32)
}

// Arena holds the tables of all levels in one contiguous buffer.
type Arena struct {
	buf    []float32
	tables []Table
	stride int // elements per level
}

// Size returns the number of float32 elements needed for the given shape.
func Size(levels int, log2Rows uint, features int) (int, error) {
	if levels < 1 || features < 1 {
		return 0, fmt.Errorf("invalid table shape: levels=%d features=%d", levels, features)
	}
	if log2Rows > MaxLog2Rows {
		return 0, fmt.Errorf("invalid table shape: log2 rows %d exceeds %d", log2Rows, MaxLog2Rows)
	}
	rows, err := conv.Pow2(log2Rows)
	if err != nil {
		return 0, err
	}
	stride, err := conv.MulInt(rows, features)
	if err != nil {
		return 0, err
	}
	return conv.MulInt(stride, levels)
}

// NewArena allocates zeroed tables for levels levels of 2^log2Rows rows each.
// The buffer is 64-byte aligned.
func NewArena(levels int, log2Rows uint, features int) (*Arena, error) {
	total, err := Size(levels, log2Rows, features)
	if err != nil {
		return nil, err
	}
	rows := 1 << log2Rows
	stride := rows * features

	a := &Arena{
		buf:    mem.Float32s(total),
		tables: make([]Table, levels),
		stride: stride,
	}
	for i := range a.tables {
		a.tables[i] = Table{
			level:    i,
			rows:     rows,
			features: features,
			data:     a.buf[i*stride : (i+1)*stride : (i+1)*stride],
		}
	}

	return a, nil
}

// Levels returns the number of level tables.
func (a *Arena) Levels() int { return len(a.tables) }

// Level returns the table of level i.
func (a *Arena) Level(i int) *Table { return &a.tables[i] }

// Buffer returns the flat parameter vector of all levels.
func (a *Arena) Buffer() []float32 { return a.buf }

// Len returns the number of float32 elements in the arena.
func (a *Arena) Len() int { return len(a.buf) }

// Bytes returns the memory footprint of the arena values.
func (a *Arena) Bytes() int64 { return int64(len(a.buf)) * 4 }

// Offset returns the element offset of level i in Buffer.
func (a *Arena) Offset(i int) int { return i * a.stride }

// FillUniform initialises every level from src, level by level in order.
func (a *Arena) FillUniform(src UniformSource, lo, hi float32) {
	for i := range a.tables {
		src.FillUniformRange(a.tables[i].data, lo, hi)
	}
}

// Fill sets every value of every level to v.
func (a *Arena) Fill(v float32) {
	for i := range a.buf {
		a.buf[i] = v
	}
}
