package analytics

// DefaultTopMissed is how many bars the analytics views draw.
const DefaultTopMissed = 5

// DefaultBarScale is the number of cells one miss adds to a bar.
const DefaultBarScale = 2

// Bar is one row of the top-missed chart.
type Bar struct {
	Label string
	Count int
	Width int
}

// BarChart lays out one bar per miss count. Each bar is count*scale cells
// wide, capped at maxWidth. Bars keep at least one cell so a single miss is
// always visible.
func BarChart(counts []MissCount, maxWidth, scale int) []Bar {
	if scale <= 0 {
		scale = DefaultBarScale
	}
	bars := make([]Bar, 0, len(counts))
	for _, c := range counts {
		w := min(maxWidth, c.Count*scale)
		if w < 1 && c.Count > 0 {
			w = 1
		}
		bars = append(bars, Bar{Label: c.QuestionID, Count: c.Count, Width: w})
	}
	return bars
}
