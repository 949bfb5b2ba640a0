// Package pathless finds least-cost routes across rectangular grid maps
// of walls and traffic, and serves interactive editing sessions over
// websockets.
//
// 🚀 What is in pathless?
//
//	• grid      – the map: cell kinds, costs, 8-way neighbours with the
//	              no-corner-cutting rule, bulk resets and ASCII rendering
//	• astar     – weighted A* with an external score table, a heap open
//	              set, route statistics and waypoint simplification
//	• scenario  – named layouts: built-ins, YAML/TOML files and a SQLite
//	              library
//	• server    – per-connection sessions over gorilla/websocket with JSON
//	              commands and msgpack grid snapshots
//	• config    – viper-backed settings with PATHLESS_* overrides
//	• logging   – slog text/JSON handlers
//
// ✨ Movement model
//
//   - Eight directions; a diagonal step is refused when either orthogonal
//     corner cell is an in-bounds wall.
//   - Orthogonal steps cost 1, diagonal steps √2, multiplied by the cell
//     cost (1, or 2 on traffic). Entering traffic adds a further 2.
//   - The heuristic is straight-line distance.
//
// Quick ASCII example (S start, E end, # wall, * route):
//
//	..***..
//	.*.#.*.
//	S..#..E
//	...#...
//
// The command-line entry point lives in cmd/pathless:
//
//	pathless find --scenario maze --optimize
//	pathless serve --addr :3000
//	pathless scenarios import rooms.yaml
package pathless
