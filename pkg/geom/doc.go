// Package geom provides the piecewise cubic Bezier primitives keelson is
// built on: chains of cubic segments sharing anchor points, and the two
// sampling strategies used everywhere downstream (uniform-parameter "theta"
// sampling and fixed-x "interval" sampling via bisection inversion).
package geom
