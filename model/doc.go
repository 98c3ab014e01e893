// Package model provides the indexed entity collections that sit between a
// mathematical-optimization model and its solving engine.
//
// A Model owns two collections: a VarList of decision variables and a
// ConstrList of constraints. Each entity is identified by a stable integer
// index and an optional name, and both collections stay aligned with the
// engine's own column and row arrays: adding an entity issues exactly one
// engine call, and bulk removal reindexes the survivors in a single
// compaction pass.
//
// VarView and ConstrView are the callback-safe counterparts. They hold no
// handle cache and query the engine on every access, so they remain correct
// when the engine grows its own rows or columns (cut generation, lazy
// constraints) without notifying the wrapper.
package model
