package render

// DrawStats accumulates draw counts between BeginDrawStats and EndDrawStats.
type DrawStats struct {
	DrawVertexCalls  uint32
	DrawIndexedCalls uint32
	// TotalVertices counts vertices (or indices) times instances.
	TotalVertices uint64
}

// BeginDrawStats zeroes stats and records successful draws into it until
// EndDrawStats.
func (d Device) BeginDrawStats(stats *DrawStats) {
	dev := d.live()
	if dev == nil || stats == nil {
		return
	}
	*stats = DrawStats{}
	dev.stats = stats
}

// EndDrawStats stops collecting. The struct keeps its final values.
func (d Device) EndDrawStats() {
	if dev := d.live(); dev != nil {
		dev.stats = nil
	}
}
