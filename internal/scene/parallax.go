package scene

// Rect is a card's on-screen bounds.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// Offset is a layer translation.
type Offset struct {
	X float64
	Y float64
}

// LayerOffsets moves each layer against the pointer's offset from the card
// centre. Deeper layers (higher index) move further: layer i shifts by
// (i+1)*10 units at the card edge. A pointer outside the card, or a card
// with no area, leaves every layer at rest.
func LayerOffsets(card Rect, px, py float64, layers int) []Offset {
	out := make([]Offset, layers)
	if card.Width <= 0 || card.Height <= 0 || !card.Contains(px, py) {
		return out
	}
	x := (px-card.Left)/card.Width - 0.5
	y := (py-card.Top)/card.Height - 0.5
	for i := range out {
		depth := float64(i+1) * 10
		out[i] = Offset{X: -x * depth, Y: -y * depth}
	}
	return out
}
