// Package fcm implements the fuzzy c-means refinement passes.
//
// The engine operates on dense row-major matrices: the dataset (m×d), the
// cluster centers (k×d) and the membership matrix (m×k). Every pass writes
// each output cell from exactly one goroutine with a fixed summation order,
// so parallel and serial runs produce identical results.
package fcm
