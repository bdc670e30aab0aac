// Package sh encodes view directions with the real spherical-harmonic basis
// up to degree 5 (band 4).
//
// The encoding is a fixed polynomial of the direction components with no
// learned state. Output component 0 is the constant C0 and the basis is
// nested: the first (d-1)^2 outputs of degree d equal the output of degree d-1.
package sh

import (
	"fmt"

	"github.com/hupe1980/hashgrid/geom"
)

const (
	// MinDegree is the smallest supported degree.
	MinDegree = 1
	// MaxDegree is the largest supported degree.
	MaxDegree = 5
)

// Basis constants.
const (
	C0 = 0.28209479177387814
	C1 = 0.4886025119029199
)

var (
	c2 = [5]float32{
		1.0925484305920792,
		-1.0925484305920792,
		0.31539156525252005,
		-1.0925484305920792,
		0.5462742152960396,
	}
	c3 = [7]float32{
		-0.5900435899266435,
		2.890611442640554,
		-0.4570457994644658,
		0.3731763325901154,
		-0.4570457994644658,
		1.445305721320277,
		-0.5900435899266435,
	}
	c4 = [9]float32{
		2.5033429417967046,
		-1.7701307697799304,
		0.9461746957575601,
		-0.6690465435572892,
		0.10578554691520431,
		-0.6690465435572892,
		0.47308734787878004,
		-1.7701307697799304,
		0.6258357354491761,
	}
)

// ErrInvalidDegree indicates a degree outside [MinDegree, MaxDegree].
type ErrInvalidDegree struct {
	Degree int
}

func (e *ErrInvalidDegree) Error() string {
	return fmt.Sprintf("invalid degree %d: must be in [%d, %d]", e.Degree, MinDegree, MaxDegree)
}

// Encoder evaluates the basis for a fixed degree. It is stateless and safe
// for concurrent use.
type Encoder struct {
	degree int
}

// New returns an encoder of the given degree.
func New(degree int) (*Encoder, error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, &ErrInvalidDegree{Degree: degree}
	}
	return &Encoder{degree: degree}, nil
}

// Degree returns the configured degree.
func (e *Encoder) Degree() int { return e.degree }

// OutDim returns degree².
func (e *Encoder) OutDim() int { return e.degree * e.degree }

// Encode returns the basis values of dir.
func (e *Encoder) Encode(dir geom.Vec3) []float32 {
	out := make([]float32, e.OutDim())
	e.EncodeInto(dir, out)
	return out
}

// EncodeBatch encodes dirs into vectors sharing one backing slice.
func (e *Encoder) EncodeBatch(dirs []geom.Vec3) [][]float32 {
	dim := e.OutDim()
	data := make([]float32, len(dirs)*dim)
	out := make([][]float32, len(dirs))
	for i, d := range dirs {
		out[i] = data[i*dim : (i+1)*dim : (i+1)*dim]
		e.EncodeInto(d, out[i])
	}
	return out
}

// EncodeInto writes the basis values of dir into dst.
// dst must have length OutDim().
func (e *Encoder) EncodeInto(dir geom.Vec3, dst []float32) {
	_ = dst[e.OutDim()-1]
	x, y, z := dir[0], dir[1], dir[2]

	dst[0] = C0
	if e.degree <= 1 {
		return
	}

	dst[1] = -C1 * y
	dst[2] = C1 * z
	dst[3] = -C1 * x
	if e.degree <= 2 {
		return
	}

	xx, yy, zz := x*x, y*y, z*z
	xy, yz, xz := x*y, y*z, x*z
	dst[4] = c2[0] * xy
	dst[5] = c2[1] * yz
	dst[6] = c2[2] * (2*zz - xx - yy)
	dst[7] = c2[3] * xz
	dst[8] = c2[4] * (xx - yy)
	if e.degree <= 3 {
		return
	}

	dst[9] = c3[0] * y * (3*xx - yy)
	dst[10] = c3[1] * xy * z
	dst[11] = c3[2] * y * (4*zz - xx - yy)
	dst[12] = c3[3] * z * (2*zz - 3*xx - 3*yy)
	dst[13] = c3[4] * x * (4*zz - xx - yy)
	dst[14] = c3[5] * z * (xx - yy)
	dst[15] = c3[6] * x * (xx - 3*yy)
	if e.degree <= 4 {
		return
	}

	dst[16] = c4[0] * xy * (xx - yy)
	dst[17] = c4[1] * yz * (3*xx - yy)
	dst[18] = c4[2] * xy * (7*zz - 1)
	dst[19] = c4[3] * yz * (7*zz - 3)
	dst[20] = c4[4] * (zz*(35*zz-30) + 3)
	dst[21] = c4[5] * xz * (7*zz - 3)
	dst[22] = c4[6] * (xx - yy) * (7*zz - 1)
	dst[23] = c4[7] * xz * (xx - 3*yy)
	dst[24] = c4[8] * (xx*(xx-3*yy) - yy*(3*xx-yy))
}
