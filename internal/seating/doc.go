// Package seating computes exam seating arrangements.
//
// Every function in this package is pure: callers pass classrooms and level
// groups by value and receive a fresh result. Nothing is cached and nothing
// is read from the environment, so identical inputs always produce identical
// output.
//
// The pipeline is:
//
//	CheckCapacity -> Assign (one or two per bench) -> BuildBlockSummary
//
// Generate runs the whole pipeline for a Request and returns a Plan that the
// report package can render.
package seating
