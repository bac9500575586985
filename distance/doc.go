// Package distance provides the squared Euclidean distance used by the
// clustering engine.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
//
// Both vectors must have the same length. Callers that cannot guarantee
// this should compare lengths first; SquaredL2 panics on a mismatch.
package distance
