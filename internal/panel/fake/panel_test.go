package fake

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

func TestPanelRecordsAndReplays(t *testing.T) {
	var out bytes.Buffer
	p := New()
	p.Out = &out
	p.Press(2, 3)
	assert.Equal(t, 2, p.Pending())

	ev, ok := p.Poll()
	assert.True(t, ok)
	assert.Equal(t, panel.Event{X: 2, Y: 3, Edge: panel.Rising}, ev)

	p.SetPixel(1, 0, palette.RGB{R: 255})
	assert.NoError(t, p.Sync())
	assert.Equal(t, "[sync 0001] lit=1 first=(1,0)=#ff0000\n", out.String())

	assert.NoError(t, p.Close())
	assert.True(t, p.Closed)
}
