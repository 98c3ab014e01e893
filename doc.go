// Package gomip provides a solver-agnostic modeling layer for Mixed-Integer
// Programming, keeping variable and constraint collections index-aligned
// with an attached solver engine.
//
// The model package holds the modeling API: handles, linear expressions,
// caching collections and callback-safe views. The enginetest package ships
// an in-memory engine for tests; real solver bindings implement
// model.Engine.
package gomip

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.4.0")
