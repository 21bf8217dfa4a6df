package gm

import (
	"fmt"
	"image"
	"math"
)

type Vec struct {
	X, Y float64
}

var VecZero = Vec{}
var VecOne = Vec{X: 1, Y: 1}

func VecOf(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// VecFromAngle returns a unit vector pointing in the direction of the angle.
func VecFromAngle(angle Rad) Vec {
	return Vec{X: angle.Cos(), Y: angle.Sin()}
}

func (v Vec) Add(other Vec) Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v Vec) Sub(other Vec) Vec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v Vec) Mul(scalar float64) Vec {
	v.X *= scalar
	v.Y *= scalar
	return v
}

func (v Vec) MulEach(other Vec) Vec {
	v.X *= other.X
	v.Y *= other.Y
	return v
}

func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns a vector of length 1 pointing in the same direction.
// The zero vector stays zero.
func (v Vec) Normalized() Vec {
	length := v.Length()
	if length == 0 {
		return v
	}

	return Vec{X: v.X / length, Y: v.Y / length}
}

func (v Vec) IsZero() bool {
	return v == VecZero
}

func (v Vec) ToImagePoint() image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

func (v Vec) String() string {
	return fmt.Sprintf("vec(x=%v, y=%v)", v.X, v.Y)
}
