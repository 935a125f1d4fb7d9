package ui

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDisplayDimensions(t *testing.T) {
	tests := map[string]struct {
		width    int
		height   int
		expRatio float32
		pixelW   int
		expW     float32
		pixelH   int
		expH     float32
	}{
		"wide": {
			width:    800,
			height:   400,
			expRatio: 2,
			pixelW:   400,
			expW:     1,
			pixelH:   100,
			expH:     0.25,
		},
		"square": {
			width:    500,
			height:   500,
			expRatio: 1,
			pixelW:   250,
			expW:     0.5,
			pixelH:   500,
			expH:     1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewDisplayDimensions(tt.width, tt.height)

			testutil.AssertEqual(t, "ratio", d.Ratio(), tt.expRatio)
			testutil.AssertEqual(t, "float width", d.FloatWidthForPixelWidth(tt.pixelW), tt.expW)
			testutil.AssertEqual(t, "float height", d.FloatHeightForPixelHeight(tt.pixelH), tt.expH)
		})
	}
}

func TestDisplayDimensions_Set(t *testing.T) {
	d := NewDisplayDimensions(100, 100)
	d.Set(300, 150)

	testutil.AssertEqual(t, "width", d.Width(), 300)
	testutil.AssertEqual(t, "height", d.Height(), 150)
	testutil.AssertEqual(t, "ratio", d.Ratio(), float32(2))
}
