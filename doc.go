// Package segcut computes equal-area cut schedules for circular
// cross-sections.
//
// Given a circle of radius r, a cut schedule is the sequence of horizontal
// chords, measured from the bottom of the circle, such that each chord
// encloses a fixed increment of area more than the one below it. This is the
// problem of slicing cylindrical stock, or a round tank, into pieces of equal
// volume.
//
// # Segments
//
// The region between a chord and the arc below it is a circular [Segment]. Its
// central angle θ, its height h and its area A are related by
//
//	A = r²/2 · (θ - sin θ)
//	h = r · (1 - cos(θ/2))
//
// Neither relation between A and h has a closed-form inverse, so [Circle]
// solves for θ numerically, using a [Solver]. [Circle.HeightFromArea] and
// [Circle.AreaFromHeight] are the two directions of the mapping, and
// [Circle.SegmentFromArea] and [Circle.SegmentFromHeight] are their general
// forms that accept a custom solver and initial guess.
//
// The default solver is [Secant], a local, derivative-free method. Every
// inversion is seeded at θ = [DefaultGuess] unless told otherwise. [ITP] is a
// bracketed alternative that searches all of [0, 2π] and always converges.
//
// # Schedules
//
// [BuildSchedule] repeatedly adds the area increment and inverts the
// cumulative area to a height. It stops at the first cut that doesn't gain
// height (or gains less than [Options.MinHeightDelta]) and discards that cut.
// Whatever remains above the last accepted cut is reported as the
// [LeftoverRecord].
//
// [Sweep] computes independent schedules for a family of increments, as
// produced by [Increments], in parallel.
//
// Schedules are plain values. Presenting them is left to the caller; the
// segcut command renders them as tables, JSON, TOML, CSV or SVG.
package segcut
