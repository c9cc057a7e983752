// Package plan holds the format-agnostic model of a run plan: the targets to
// execute and the dependency names that wire them together. Loaders (today
// only HCL) translate their file formats into this model, and everything
// downstream of them, the engine builder and the runner, works from it
// without knowing where it came from.
package plan
