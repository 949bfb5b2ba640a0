// Package grid models a rectangular map of cells for route planning.
//
// What:
//
//   - Grid owns a dense Width×Height array of Cells, each with a Kind,
//     a walkability flag and a traversal cost multiplier.
//   - At most one Start and one End cell exist; the grid keeps pointers to them.
//   - Neighbors enumerates the 4 or 8 adjacent walkable cells and refuses
//     diagonal moves that would cut a blocked corner.
//   - ClearAll, ClearWalls and ClearPath reset the grid in bulk.
//
// Cost model:
//
//	Kind      Walkable  Cost
//	Empty     yes       1
//	Start     yes       1
//	End       yes       1
//	Path      yes       1
//	Traffic   yes       2
//	Wall      no        +Inf
//
// Complexity:
//
//   - Cell access, SetCellType, Neighbors: O(1).
//   - ClearAll, ClearWalls, ClearPath, Stats: O(W×H).
//
// Errors:
//
//   - ErrInvalidSize: width or height below 1.
//   - ErrUnknownKind: ParseKind received an unrecognised name.
//
// A Grid is not safe for concurrent use; callers serialize edits and searches.
package grid
