package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for f := Field(0); f < Count; f++ {
		d, ok := Lookup(f)
		require.True(t, ok, "field %d must be in the table", f)
		assert.Equal(t, f, d.Field)
		assert.NotEmpty(t, d.Label)
	}

	_, ok := Lookup(Count)
	assert.False(t, ok)

	_, ok = Lookup(Field(200))
	assert.False(t, ok)
}

func TestDescriptorShape(t *testing.T) {
	testCases := []struct {
		name      string
		field     Field
		kind      Kind
		persisted bool
		hasSlot   bool
	}{
		{"heat dots numeric persisted", HeatDots, Numeric, true, true},
		{"feed numeric one-shot", Feed, Numeric, false, true},
		{"print text trigger", PrintText, Trigger, false, false},
		{"mesh name text", MeshName, Text, true, true},
		{"mesh pin text", MeshPin, Text, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := Lookup(tc.field)
			require.True(t, ok)
			assert.Equal(t, tc.kind, d.Kind)
			assert.Equal(t, tc.persisted, d.Persisted())
			assert.Equal(t, tc.hasSlot, d.HasSlot())
		})
	}

	name, _ := Lookup(MeshName)
	assert.Equal(t, 31, name.MaxLen())

	pin, _ := Lookup(MeshPin)
	assert.Equal(t, 15, pin.MaxLen())
}

func TestClampRangeAndIdempotence(t *testing.T) {
	inputs := []int{math.MinInt, -1000, -1, 0, 1, 7, 15, 23, 24, 31, 47, 50, 64, 65, 255, 256, 999, math.MaxInt}

	for _, d := range All() {
		if d.Kind != Numeric {
			continue
		}

		for _, in := range inputs {
			got := Clamp(d.Field, in)
			assert.GreaterOrEqual(t, got, d.Range.Min, "%s clamp(%d)", d.Label, in)
			assert.LessOrEqual(t, got, d.Range.Max, "%s clamp(%d)", d.Label, in)
			assert.Equal(t, got, Clamp(d.Field, int(got)), "%s clamp must be idempotent", d.Label)
		}
	}
}

func TestClampScenarios(t *testing.T) {
	assert.Equal(t, uint8(24), Clamp(LineHeight, 10))
	assert.Equal(t, uint8(15), Clamp(HeatDots, 999))
	assert.Equal(t, uint8(50), Clamp(Feed, 51))
	assert.Equal(t, uint8(0), Clamp(PrintText, 12))
	assert.Equal(t, uint8(0), Clamp(MeshName, 12))
	assert.Equal(t, uint8(0), Clamp(Count, 12))
}

func TestByName(t *testing.T) {
	testCases := []struct {
		in   string
		want Field
		ok   bool
	}{
		{"lineHeight", LineHeight, true},
		{"LINE_HEIGHT", LineHeight, true},
		{"line_height", LineHeight, true},
		{"feed", Feed, true},
		{"print", PrintText, true},
		{"meshname", MeshName, true},
		{"0", HeatDots, true},
		{"15", MeshPin, true},
		{"16", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"nope", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ByName(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestVariant(t *testing.T) {
	assert.Equal(t, 11, Basic.Len())
	assert.Equal(t, 16, Extended.Len())
	assert.True(t, Basic.Contains(Feed))
	assert.False(t, Basic.Contains(Charset))
	assert.True(t, Extended.Contains(MeshPin))
	assert.False(t, Extended.Contains(Count))
	assert.Len(t, Basic.Fields(), 11)

	v, err := ParseVariant("Basic")
	require.NoError(t, err)
	assert.Equal(t, Basic, v)

	v, err = ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, Extended, v)

	_, err = ParseVariant("huge")
	require.ErrorIs(t, err, ErrUnknownVariant)
}
