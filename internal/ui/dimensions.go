package ui

// DisplayDimensions holds the window size in pixels. Screen coordinates
// are floats where the height spans 0..1 and the width spans 0..Ratio.
type DisplayDimensions struct {
	width  int
	height int
	ratio  float32
}

func NewDisplayDimensions(width, height int) *DisplayDimensions {
	d := &DisplayDimensions{}
	d.Set(width, height)
	return d
}

func (d *DisplayDimensions) Set(width, height int) {
	d.width = width
	d.height = height
	d.ratio = float32(width) / float32(height)
}

func (d *DisplayDimensions) Width() int  { return d.width }
func (d *DisplayDimensions) Height() int { return d.height }

// Ratio is width over height.
func (d *DisplayDimensions) Ratio() float32 { return d.ratio }

func (d *DisplayDimensions) FloatWidthForPixelWidth(w int) float32 {
	return float32(w) * d.ratio / float32(d.width)
}

func (d *DisplayDimensions) FloatHeightForPixelHeight(h int) float32 {
	return float32(h) / float32(d.height)
}
