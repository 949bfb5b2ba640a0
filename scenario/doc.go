// Package scenario describes reusable grid layouts: size, endpoints, walls
// and traffic cells.
//
// Sources:
//
//   - Built-in examples: simple, lShape, maze and impossible (all 30×30).
//   - Files: YAML (.yaml, .yml) or TOML (.toml) via Load, Decode and Encode.
//   - Store: a SQLite-backed library of named scenarios.
//
// Apply writes a scenario onto a grid.Grid after clearing it.
package scenario
