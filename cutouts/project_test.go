package cutouts_test

import (
	"testing"

	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fajita(t *testing.T) *panel.Panel {
	t.Helper()

	p, err := panel.Builtin().Lookup([]string{"oneplus,fajita"})
	require.NoError(t, err)
	return p
}

func fillingView(out cutouts.OutputState) cutouts.ViewState {
	return cutouts.ViewState{Box: out.Box(), Maximized: true}
}

func TestProject(t *testing.T) {
	p := fajita(t)

	tests := []struct {
		name      string
		scale     float64
		transform geom.Transform
		boxes     []geom.Rect[int]
		corners   []panel.Corner
	}{
		{
			name:      "Normal",
			scale:     1,
			transform: geom.TransformNormal,
			boxes:     []geom.Rect[int]{geom.Box(355, 0, 368, 78)},
			corners: []panel.Corner{
				{Position: geom.TopLeft, Radius: 120},
				{Position: geom.TopRight, Radius: 120},
				{Position: geom.BottomRight, Radius: 120},
				{Position: geom.BottomLeft, Radius: 120},
			},
		},
		{
			name:      "Scale2",
			scale:     2,
			transform: geom.TransformNormal,
			boxes:     []geom.Rect[int]{geom.Box(177, 0, 185, 39)},
			corners: []panel.Corner{
				{Position: geom.TopLeft, Radius: 60},
				{Position: geom.TopRight, Radius: 60},
				{Position: geom.BottomRight, Radius: 60},
				{Position: geom.BottomLeft, Radius: 60},
			},
		},
		{
			name:      "Rotated",
			scale:     1,
			transform: geom.Transform90,
			boxes:     []geom.Rect[int]{geom.Box(0, 357, 78, 368)},
		},
		{
			name:      "RotatedScale2",
			scale:     2,
			transform: geom.Transform90,
			boxes:     []geom.Rect[int]{geom.Box(0, 178, 39, 185)},
		},
		{
			name:      "Rotated180",
			scale:     1,
			transform: geom.Transform180,
			boxes:     []geom.Rect[int]{geom.Box(357, 2262, 368, 78)},
		},
		{
			name:      "Flipped",
			scale:     1,
			transform: geom.TransformFlipped,
			boxes:     []geom.Rect[int]{geom.Box(357, 0, 368, 78)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := cutouts.OutputState{
				Mode:      p.Size(),
				Scale:     test.scale,
				Transform: test.transform,
				Panel:     p,
			}

			proj := cutouts.Project(out, fillingView(out))
			assert.Equal(t, test.boxes, proj.Boxes)
			if test.corners != nil {
				assert.Equal(t, test.corners, proj.Corners)
			}
			require.Len(t, proj.Corners, 4)
			for i, c := range proj.Corners {
				assert.Equal(t, geom.Corner(i), c.Position)
			}
		})
	}
}

func TestProjectCornerPositions(t *testing.T) {
	p := &panel.Panel{
		Name:   "Test",
		Width:  100,
		Height: 200,
		Radii:  [geom.NumCorners]int{10, 0, 30, 0},
	}

	tests := []struct {
		transform geom.Transform
		corners   []panel.Corner
	}{
		{
			transform: geom.TransformNormal,
			corners:   []panel.Corner{{Position: geom.TopLeft, Radius: 10}, {Position: geom.BottomRight, Radius: 30}},
		},
		{
			transform: geom.Transform90,
			corners:   []panel.Corner{{Position: geom.TopRight, Radius: 10}, {Position: geom.BottomLeft, Radius: 30}},
		},
		{
			transform: geom.TransformFlipped,
			corners:   []panel.Corner{{Position: geom.TopRight, Radius: 10}, {Position: geom.BottomLeft, Radius: 30}},
		},
		{
			transform: geom.TransformFlipped90,
			corners:   []panel.Corner{{Position: geom.TopLeft, Radius: 30}, {Position: geom.BottomRight, Radius: 10}},
		},
	}

	for _, test := range tests {
		t.Run(test.transform.String(), func(t *testing.T) {
			out := cutouts.OutputState{Mode: p.Size(), Scale: 1, Transform: test.transform, Panel: p}
			proj := cutouts.Project(out, fillingView(out))
			assert.Empty(t, proj.Boxes)
			assert.Equal(t, test.corners, proj.Corners)
		})
	}
}

func TestProjectSmallRadius(t *testing.T) {
	p := &panel.Panel{
		Name:   "Test",
		Width:  100,
		Height: 100,
		Radii:  [geom.NumCorners]int{1, 3, 0, 0},
	}
	out := cutouts.OutputState{Mode: p.Size(), Scale: 3, Panel: p}

	proj := cutouts.Project(out, fillingView(out))
	assert.Equal(t, []panel.Corner{{Position: geom.TopRight, Radius: 1}}, proj.Corners)
}

func TestProjectFloating(t *testing.T) {
	out := cutouts.OutputState{Mode: geom.Pt(1080, 2340), Scale: 1, Panel: fajita(t)}
	view := cutouts.ViewState{Box: out.Box()}

	proj := cutouts.Project(out, view)
	assert.True(t, proj.Empty())
}

func TestProjectNoPanel(t *testing.T) {
	out := cutouts.OutputState{Mode: geom.Pt(1080, 2340), Scale: 1}
	view := cutouts.ViewState{Box: out.Box(), Fullscreen: true}

	proj := cutouts.Project(out, view)
	assert.True(t, proj.Empty())
}

func TestProjectLayout(t *testing.T) {
	out := cutouts.OutputState{
		Origin: geom.Pt(1920, 100),
		Mode:   geom.Pt(1080, 2340),
		Scale:  1,
		Panel:  fajita(t),
	}
	assert.Equal(t, geom.Rt(1920, 100, 3000, 2440), out.Box())

	proj := cutouts.Project(out, fillingView(out))
	assert.Equal(t, []geom.Rect[int]{geom.Box(355, 0, 368, 78)}, proj.Boxes)

	view := cutouts.ViewState{Box: geom.Rt(2300, 50, 2500, 1000), Maximized: true}
	proj = cutouts.Project(out, view)
	assert.Equal(t, []geom.Rect[int]{geom.Rt(0, 50, 200, 128)}, proj.Boxes)

	view = cutouts.ViewState{Box: geom.Rt(1920, 500, 3000, 2440), Fullscreen: true}
	proj = cutouts.Project(out, view)
	assert.Empty(t, proj.Boxes)
	assert.Len(t, proj.Corners, 4)
}

func TestProjectIdempotent(t *testing.T) {
	out := cutouts.OutputState{Mode: geom.Pt(1080, 2340), Scale: 2, Transform: geom.Transform270, Panel: fajita(t)}
	view := fillingView(out)

	first := cutouts.Project(out, view)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, cutouts.Project(out, view))
	}
}

func TestOutputStateBox(t *testing.T) {
	out := cutouts.OutputState{Mode: geom.Pt(1080, 2340), Scale: 3, Transform: geom.Transform270}
	assert.Equal(t, geom.Pt(780, 360), out.Size())
	assert.Equal(t, geom.Rt(0, 0, 780, 360), out.Box())
}
