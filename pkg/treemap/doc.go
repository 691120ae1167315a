// Package treemap computes squarified treemap layouts.
//
// [Compute] turns a [dataset.Node] hierarchy into one rectangle per leaf,
// packed into a fixed canvas. The tiling follows the squarified algorithm of
// Bruls, Huizing and van Wijk with the golden ratio as target aspect, and the
// padding rules match d3-hierarchy: inner padding separates siblings, outer
// padding insets every group's children from the group's border.
//
// # Determinism
//
// Children are sorted by aggregate value, largest first. Ties keep dataset
// order, so the same input and canvas always produce bit-identical bounds.
//
// # Ownership
//
// A [Layout] is a fresh value on every call. Nothing in it aliases the input
// tree, and nothing in this package holds state between calls.
//
// [dataset.Node]: github.com/matzehuels/treemap/pkg/dataset.Node
package treemap
