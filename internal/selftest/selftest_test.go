package selftest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel/fake"
	"github.com/coreman2200/funtimes-silopad/internal/render"
)

func lit(f *render.Frame) (n int) {
	for y := range f {
		for x := range f[y] {
			if !f[y][x].IsOff() {
				n++
			}
		}
	}
	return n
}

func TestStepCounts(t *testing.T) {
	cases := []struct {
		kind  Kind
		steps int
		lit   int
	}{
		{Boot, 8, 1},
		{IndexSweep, 64, 1},
		{RGBTest, 3, 64},
		{TileFill, 4, 16},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			r := NewRunner(Plan{Kind: tc.kind})
			var f render.Frame
			n := 0
			for r.Step(&f) {
				assert.Equal(t, tc.lit, lit(&f))
				n++
			}
			assert.Equal(t, tc.steps, n)
		})
	}
}

func TestBootWalksDiagonal(t *testing.T) {
	r := NewRunner(Plan{Kind: Boot})
	var f render.Frame
	for i := 0; r.Step(&f); i++ {
		assert.Equal(t, palette.Named(30, palette.Orange), f[i][i])
	}
}

func TestTileFillOrder(t *testing.T) {
	r := NewRunner(Plan{Kind: TileFill, Level: 1})
	var f render.Frame
	r.Step(&f)
	r.Step(&f)
	assert.Equal(t, palette.RGB{G: 255, B: 255}, f[0][4])
	assert.True(t, f[0][3].IsOff())
	assert.True(t, f[4][4].IsOff())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("rgb_channels")
	require.NoError(t, err)
	assert.Equal(t, RGBTest, k)
	_, err = ParseKind("plane_z")
	assert.Error(t, err)
}

func TestRunLeavesPanelDark(t *testing.T) {
	p := fake.New()
	require.NoError(t, Run(context.Background(), p, Plan{Kind: Boot}, time.Microsecond))
	assert.Equal(t, 9, p.Syncs)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.True(t, p.Pixel(x, y).IsOff())
		}
	}
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, fake.New(), Plan{Kind: IndexSweep}, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
