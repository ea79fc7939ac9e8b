package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekOf16Jan = time.Date(2023, time.January, 16, 0, 0, 0, 0, time.UTC)

func TestBuild_Boundaries(t *testing.T) {
	m := NewMapper(DefaultDayWidth)

	g := m.Build(0)
	require.Len(t, g.Boundaries, StepsPerDay)
	assert.Equal(t, 0, g.Base())
	assert.Equal(t, 1330, g.Last())
	for i := 1; i < len(g.Boundaries); i++ {
		assert.Equal(t, 14, g.Boundaries[i]-g.Boundaries[i-1])
	}

	g2 := m.Build(2)
	assert.Equal(t, 2688, g2.Base())
	assert.Equal(t, 2688+1330, g2.Last())

	neg := m.Build(-1)
	assert.Equal(t, -1344, neg.Base())
}

func TestBuild_HourBuckets(t *testing.T) {
	m := NewMapper(DefaultDayWidth)
	g := m.Build(0)

	tests := []struct {
		label string
		want  []int
	}{
		{"12:00 AM", []int{0, 14, 28, 42}},
		{"1:00 AM", []int{56, 70, 84, 98}},
		{"12:00 PM", []int{672, 686, 700, 714}},
		{"4:00 PM", []int{896, 910, 924, 938}},
		{"11:00 PM", []int{1288, 1302, 1316, 1330}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := g.Hour(tt.label)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := g.Hour("13:00 PM")
	assert.False(t, ok)
}

func TestBuild_Memoized(t *testing.T) {
	m := NewMapper(DefaultDayWidth)

	a := m.Build(3)
	b := m.Build(3)
	assert.Same(t, a, b)
	m.Build(4)

	assert.Equal(t, Stats{Hits: 1, Misses: 2}, m.Stats())
}

func TestNewMapper_InvalidWidthFallsBack(t *testing.T) {
	assert.Equal(t, DefaultDayWidth, NewMapper(0).DayWidth())
	assert.Equal(t, DefaultDayWidth, NewMapper(1000).DayWidth())

	m := NewMapper(2688)
	assert.Equal(t, 28, m.StepWidth())
}

func TestCoefficient(t *testing.T) {
	m := NewMapper(DefaultDayWidth)
	assert.Equal(t, 0, m.Coefficient(0))
	assert.Equal(t, 0, m.Coefficient(1343))
	assert.Equal(t, 1, m.Coefficient(1344))
	assert.Equal(t, 6, m.Coefficient(9407))
	assert.Equal(t, -1, m.Coefficient(-1))
	assert.Equal(t, -1, m.Coefficient(-1344))
}

func TestSnap(t *testing.T) {
	grid := NewMapper(DefaultDayWidth).Build(0).Boundaries

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"below range clamps to first", -50, 0},
		{"first step", 13, 0},
		{"exact boundary", 14, 14},
		{"between boundaries", 27, 14},
		{"mid day", 900, 896},
		{"last boundary", 1330, 1330},
		{"near end of day", 1342, 1330},
		{"one step past last", 1344, 1330},
		{"more than one step past last", 1345, 1344},
		{"far past the grid", 5000, 1344},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snap(grid, tt.x))
		})
	}
}

func TestSnap_Empty(t *testing.T) {
	assert.Equal(t, 42, Snap(nil, 42))
}

func TestSnap_OffsetGrid(t *testing.T) {
	m := NewMapper(DefaultDayWidth)
	assert.Equal(t, 1344, m.Snap(1, 1350))
	assert.Equal(t, 1344+14, m.Snap(1, 1344+27))
	// left of the column clamps to its base
	assert.Equal(t, 1344, m.Snap(1, 100))
}

func TestSnap_Monotonic(t *testing.T) {
	m := NewMapper(DefaultDayWidth)
	for _, offset := range []int{0, 1, 6} {
		grid := m.Build(offset).Boundaries
		base := grid[0]
		prev := Snap(grid, base-100)
		for x := base - 99; x < base+DefaultDayWidth+100; x++ {
			got := Snap(grid, x)
			require.GreaterOrEqual(t, got, prev, "offset %d x %d", offset, x)
			require.LessOrEqual(t, got-prev, 14, "offset %d x %d", offset, x)
			prev = got
		}
	}
}

func TestSnap_ResolvesToSameTime(t *testing.T) {
	m := NewMapper(DefaultDayWidth)
	for _, offset := range []int{0, 3} {
		grid := m.Build(offset).Boundaries
		base := offset * DefaultDayWidth
		for x := base; x < base+DefaultDayWidth; x++ {
			snapped := Snap(grid, x)
			require.Equal(t,
				m.PixelToTime(x, offset, weekOf16Jan),
				m.PixelToTime(snapped, offset, weekOf16Jan),
				"offset %d x %d", offset, x)
		}
	}
}
