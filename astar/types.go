package astar

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/pathless/grid"
)

// Sentinel errors returned by the Pathfinder.
var (
	// ErrNilGrid indicates New was given a nil grid.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrInvalidEndpoint indicates a start or end outside the grid or on a
	// non-walkable cell. The search is not attempted.
	ErrInvalidEndpoint = errors.New("astar: endpoint is out of bounds or not walkable")

	// ErrNoPath indicates the search exhausted every reachable cell.
	ErrNoPath = errors.New("astar: no path found")

	// ErrEndpointsUnset indicates the grid has no start or no end cell.
	ErrEndpointsUnset = errors.New("astar: grid start or end is not set")
)

// Path is an ordered route from start to end, both inclusive.
type Path []grid.Point

// Stats describes a route.
//
// PathLength – number of points.
// PathCost   – sum of raw step distances; cell costs are not applied.
// NodesExplored – cells with a positive g score in the most recent search.
// Success    – false, with every other field zero, for an empty path.
type Stats struct {
	PathLength    int     `json:"pathLength" msgpack:"pathLength"`
	PathCost      float64 `json:"pathCost" msgpack:"pathCost"`
	NodesExplored int     `json:"nodesExplored" msgpack:"nodesExplored"`
	Success       bool    `json:"success" msgpack:"success"`
}

// Result summarises the most recent search.
type Result struct {
	Path     Path
	Cost     float64 // weighted g of the goal, as minimised by the search
	Expanded int     // cells moved to the closed set
	Found    bool
}

// Options configures a Pathfinder.
type Options struct {
	// Logger receives debug summaries of each search.
	Logger *slog.Logger
	// OnExpand is called for every cell moved to the closed set, in order.
	OnExpand func(p grid.Point)
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns Options with a discarding logger and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.DiscardHandler),
		OnExpand: func(grid.Point) {},
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnExpand registers a hook invoked for each expanded cell.
func WithOnExpand(fn func(p grid.Point)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}
