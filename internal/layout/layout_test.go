package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTable(t *testing.T) {
	cases := []struct {
		x, y int
		want Region
	}{
		{0, 0, Region{Kind: Select, Value: 0}},
		{4, 0, Region{Kind: Select, Value: 4}},
		{5, 0, Region{Kind: ControlNumber, Value: 1}},
		{7, 0, Region{Kind: ControlNumber, Value: 3}},
		{5, 1, Region{Kind: ControlNumber, Value: 4}},
		{7, 4, Region{Kind: ControlNumber, Value: 15}},
		{0, 1, Region{Kind: ControllerSlot, Value: 0, Controller: Controller{GridX, 1}}},
		{3, 2, Region{Kind: ControllerSlot, Value: 3, Controller: Controller{GridY, 1}}},
		{4, 3, Region{Kind: ControllerSlot, Value: 4, Controller: Controller{GridX, 2}}},
		{1, 4, Region{Kind: ControllerSlot, Value: 1, Controller: Controller{GridY, 2}}},
		{2, 5, Region{Kind: ControllerSlot, Value: 2, Controller: Controller{Enc, 1}}},
		{0, 7, Region{Kind: ControllerSlot, Value: 0, Controller: Controller{Enc, 3}}},
		{5, 5, Region{Kind: Macro, Value: 1}},
		{5, 6, Region{Kind: Macro, Value: 2}},
		{5, 7, Region{Kind: Macro, Value: 3}},
		{6, 5, Region{Kind: MacroMultiplier, Factor: Half}},
		{6, 6, Region{Kind: MacroMultiplier, Factor: NegOne}},
		{7, 5, Region{Kind: RandomToggle}},
		{7, 6, Region{Kind: ModeCycle}},
		{6, 7, Region{Kind: MacroClear}},
		{7, 7, Region{Kind: Assign}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(Silos, c.x, c.y), "(%d,%d)", c.x, c.y)
	}
}

func TestClassifyIsPure(t *testing.T) {
	first := Enumerate(Silos)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			assert.Equal(t, first[y][x], Classify(Silos, x, y))
			assert.Equal(t, Classify(Silos, x, y), Classify(Silos, x, y))
		}
	}
	// mutating a copy leaves the table alone
	first[0][0].Value = 99
	assert.Equal(t, 0, Classify(Silos, 0, 0).Value)
}

func TestEnumerateCounts(t *testing.T) {
	counts := map[Kind]int{}
	g := Enumerate(Silos)
	for y := range g {
		for x := range g[y] {
			counts[g[y][x].Kind]++
		}
	}
	assert.Equal(t, 5, counts[Select])
	assert.Equal(t, 35, counts[ControllerSlot])
	assert.Equal(t, 15, counts[ControlNumber])
	assert.Equal(t, 3, counts[Macro])
	assert.Equal(t, 2, counts[MacroMultiplier])
	assert.Equal(t, 1, counts[MacroClear])
	assert.Equal(t, 1, counts[RandomToggle])
	assert.Equal(t, 1, counts[ModeCycle])
	assert.Equal(t, 1, counts[Assign])
}

func TestClassifyPanics(t *testing.T) {
	assert.Panics(t, func() { Classify(Silos, 8, 0) })
	assert.Panics(t, func() { Classify(Silos, 0, -1) })
	assert.Panics(t, func() { Classify(Page("mood"), 0, 0) })
}

func TestMaxControls(t *testing.T) {
	for _, tg := range []Target{Track1, Track2, Track3, Track4} {
		assert.Equal(t, 13, MaxControls(tg))
	}
	assert.Equal(t, 11, MaxControls(FX))
	assert.Equal(t, 0, MaxControls(NoTarget))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "track1", Track1.String())
	assert.Equal(t, "fx", FX.String())
	assert.Equal(t, "3", Track3.Prompt())
	assert.Equal(t, "fx", FX.Prompt())
	assert.Equal(t, "gridy2", Controller{GridY, 2}.String())
	assert.Equal(t, "none", Controller{}.String())
	assert.Equal(t, 6, Controller{Enc, 3}.Slot())
	assert.Equal(t, -1, Controller{Enc, 4}.Slot())
	assert.Equal(t, "enc2-3", Classify(Silos, 3, 6).String())
	assert.Equal(t, "macro_mult -1", Classify(Silos, 6, 6).String())
	assert.Equal(t, -0.5, NegHalf.Float())
}

func TestStripIndex(t *testing.T) {
	s := Strip{Width: 8, Height: 8, Serpentine: true}
	assert.Equal(t, 64, s.Count())
	assert.Equal(t, 0, s.Index(0, 0))
	assert.Equal(t, 15, s.Index(0, 1))
	assert.Equal(t, 8, s.Index(7, 1))
	s.Serpentine = false
	assert.Equal(t, 8, s.Index(0, 1))
}
