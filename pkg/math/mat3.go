package math

import "math"

// Mat3 is a 3x3 matrix stored in row-major order.
type Mat3 [9]float32

// Mat3Identity returns the identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Basis builds a matrix whose rows are the given frame vectors.
// For an orthonormal right-handed frame (n, t, b = n x t) the result is a
// rotation matrix with determinant +1.
func Basis(n, t, b Vec3) Mat3 {
	return Mat3{
		n.X, n.Y, n.Z,
		t.X, t.Y, t.Z,
		b.X, b.Y, b.Z,
	}
}

// Row returns row i as a vector.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Transposed returns the transpose. For an orthonormal matrix this is
// also the inverse.
func (m Mat3) Transposed() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mul returns the matrix product m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3]*o[j] + m[i*3+1]*o[3+j] + m[i*3+2]*o[6+j]
		}
	}
	return r
}

// MulVec returns m * v with v treated as a column vector.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// ToQuat converts a rotation matrix (orthonormal, determinant +1, column
// vector convention) to a unit quaternion.
func (m Mat3) ToQuat() Quat {
	trace := m[0] + m[4] + m[8]
	var q Quat
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		q = Quat{
			X: (m[7] - m[5]) / s,
			Y: (m[2] - m[6]) / s,
			Z: (m[3] - m[1]) / s,
			W: s / 4,
		}
	case m[0] > m[4] && m[0] > m[8]:
		s := float32(math.Sqrt(float64(1+m[0]-m[4]-m[8]))) * 2
		q = Quat{
			X: s / 4,
			Y: (m[1] + m[3]) / s,
			Z: (m[2] + m[6]) / s,
			W: (m[7] - m[5]) / s,
		}
	case m[4] > m[8]:
		s := float32(math.Sqrt(float64(1+m[4]-m[0]-m[8]))) * 2
		q = Quat{
			X: (m[1] + m[3]) / s,
			Y: s / 4,
			Z: (m[5] + m[7]) / s,
			W: (m[2] - m[6]) / s,
		}
	default:
		s := float32(math.Sqrt(float64(1+m[8]-m[0]-m[4]))) * 2
		q = Quat{
			X: (m[2] + m[6]) / s,
			Y: (m[5] + m[7]) / s,
			Z: s / 4,
			W: (m[3] - m[1]) / s,
		}
	}
	return q.Normalize()
}

// RotationBetween returns the unit quaternion mapping the rest frame onto
// the current frame: applying the result to a rest basis vector yields the
// corresponding current basis vector. Both matrices must be orthonormal
// row bases as produced by Basis.
func RotationBetween(rest, cur Mat3) Quat {
	return cur.Transposed().Mul(rest).ToQuat()
}
