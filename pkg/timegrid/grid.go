// Package timegrid converts between pixel positions on the timeline and
// quarter-hour times of day.
//
// A day column is DayWidth pixels wide and holds 96 quarter-hour boundaries.
// Day columns are laid out left to right, so the column at offset n starts at
// n*DayWidth.
package timegrid

import (
	"sort"
	"sync"

	"github.com/borgmon/resource-timeline/pkg/models"
)

const (
	// DefaultDayWidth is the pixel width of one day column.
	DefaultDayWidth = 1344
	// StepMinutes is the grid resolution.
	StepMinutes = 15
	// StepsPerHour is the number of boundaries per hourly bucket.
	StepsPerHour = 4
	// HoursPerDay is the number of hourly buckets per day column.
	HoursPerDay = 24
	// StepsPerDay is the number of boundaries per day column.
	StepsPerDay = StepsPerHour * HoursPerDay
)

// Grid is the snap grid of one day column
type Grid struct {
	Offset     int   // day column index
	Boundaries []int // ascending, StepsPerDay entries

	hours map[string][]int // "4:00 PM" -> 4 boundaries
}

// Base returns the first boundary, the column's 12:00 AM
func (g *Grid) Base() int {
	return g.Boundaries[0]
}

// Last returns the 11:45 PM boundary
func (g *Grid) Last() int {
	return g.Boundaries[len(g.Boundaries)-1]
}

// Hour returns the four quarter-hour boundaries of an hour label such as "4:00 PM"
func (g *Grid) Hour(label string) ([]int, bool) {
	b, ok := g.hours[label]
	return b, ok
}

// Stats reports grid cache usage
type Stats struct {
	Hits   int
	Misses int
}

// Mapper builds and caches snap grids. One Mapper serves a whole timeline
// for its lifetime; it is safe for concurrent use.
type Mapper struct {
	dayWidth  int
	stepWidth int

	mu    sync.Mutex
	cache map[int]*Grid
	stats Stats
}

// NewMapper creates a mapper for day columns of dayWidth pixels.
// dayWidth must split into StepsPerDay whole steps; otherwise DefaultDayWidth is used.
func NewMapper(dayWidth int) *Mapper {
	if dayWidth <= 0 || dayWidth%StepsPerDay != 0 {
		dayWidth = DefaultDayWidth
	}
	return &Mapper{
		dayWidth:  dayWidth,
		stepWidth: dayWidth / StepsPerDay,
		cache:     make(map[int]*Grid),
	}
}

// NewMapperFromConfig creates a mapper from timeline configuration
func NewMapperFromConfig(cfg *models.Config) *Mapper {
	return NewMapper(cfg.DayWidth)
}

// DayWidth returns the pixel width of a day column
func (m *Mapper) DayWidth() int {
	return m.dayWidth
}

// StepWidth returns the pixel width of a quarter-hour
func (m *Mapper) StepWidth() int {
	return m.stepWidth
}

// Build returns the snap grid of the day column at offset. Grids are
// memoized per offset and shared; callers must not modify them.
func (m *Mapper) Build(offset int) *Grid {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.cache[offset]; ok {
		m.stats.Hits++
		return g
	}
	m.stats.Misses++

	base := m.dayWidth * offset
	g := &Grid{
		Offset:     offset,
		Boundaries: make([]int, StepsPerDay),
		hours:      make(map[string][]int, HoursPerDay),
	}
	for i := range g.Boundaries {
		g.Boundaries[i] = base + i*m.stepWidth
	}
	for h, label := range hourLabels {
		g.hours[label] = g.Boundaries[h*StepsPerHour : (h+1)*StepsPerHour : (h+1)*StepsPerHour]
	}

	m.cache[offset] = g
	return g
}

// Stats returns cache hit and miss counts
func (m *Mapper) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Coefficient returns the day column index under surface x
func (m *Mapper) Coefficient(x int) int {
	c := x / m.dayWidth
	if x < 0 && x%m.dayWidth != 0 {
		c--
	}
	return c
}

// Snap snaps x on the grid of the day column at offset
func (m *Mapper) Snap(offset, x int) int {
	return Snap(m.Build(offset).Boundaries, x)
}

// Snap returns the grid boundary x snaps to:
//   - the first boundary for anything below first+step
//   - otherwise the largest boundary <= x
//   - one step past the last boundary when x exceeds it by more than a step
//
// The step is the distance of the first two boundaries.
func Snap(grid []int, x int) int {
	if len(grid) == 0 {
		return x
	}
	step := DefaultDayWidth / StepsPerDay
	if len(grid) > 1 {
		step = grid[1] - grid[0]
	}

	first := grid[0]
	if x < first+step {
		return first
	}

	// first index with a boundary > x; at least 1 since grid[0] <= x
	i := sort.Search(len(grid), func(i int) bool { return grid[i] > x })
	if i < len(grid) {
		return grid[i-1]
	}

	last := grid[len(grid)-1]
	// TODO: positions just past 11:45 PM snap back to it until a full step
	// beyond; decide with product whether the extrapolated boundary should
	// apply earlier.
	if x-last > step {
		return last + step
	}
	return last
}
