// Package gm (stands for geometry math) provides some geometry primitives.
//
// It includes a 2d vector type called Vec, an axis aligned rectangle Rect
// and a type named Rad to represent angle values in radian.
package gm
