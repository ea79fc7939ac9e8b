package interaction

// IndicatorState is the time marker that follows the pointer over a row
type IndicatorState struct {
	Visible bool
	X       int    // snapped surface x
	Label   string // "4:15 PM"
}

// Indicator computes the marker for a pointer at p over the row of
// resourceID. It is hidden when p lies outside the row.
func (c *Controller) Indicator(resourceID int, p Point) IndicatorState {
	surface, ok := c.surface(resourceID)
	if !ok || !surface.Contains(p) {
		return IndicatorState{}
	}
	local := p.X - surface.Left
	return IndicatorState{
		Visible: true,
		X:       c.mapper.Snap(c.mapper.Coefficient(local), local),
		Label:   c.slot(local).Time12(),
	}
}
