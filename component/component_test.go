package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
)

func TestTag_String(t *testing.T) {
	cases := map[component.Tag]string{
		component.KindFunction:  "Function",
		component.KindOperation: "Operation",
		component.KindConstant:  "Constant",
		component.Tag(99):       "Unknown",
	}
	for tag, want := range cases {
		assert.Equal(t, want, tag.String())
	}
}

func TestArity_MatchesInputNamesLength(t *testing.T) {
	c := component.NewConstant[float64](1)
	assert.Equal(t, 0, component.Arity[float64](c))
}

func TestConstant_ComputeIgnoresPointAndInputs(t *testing.T) {
	c := component.NewConstant[float64](42)
	assert.Equal(t, 42.0, c.Compute(geom.NewVec3(1.0, 2.0, 3.0), []float64{1, 2, 3}))
	assert.Equal(t, component.KindConstant, c.Kind())
	assert.Equal(t, "Constant", c.Tag())
}

func TestConstant_GetSetParameter(t *testing.T) {
	c := component.NewConstant[float64](1)

	v, ok := c.GetParameter("value")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = c.GetParameter("nope")
	assert.False(t, ok)

	require.NoError(t, c.SetParameter("value", 2.0))
	v, _ = c.GetParameter("value")
	assert.Equal(t, 2.0, v)

	assert.ErrorIs(t, c.SetParameter("nope", 2.0), ierrors.ErrUnknownParameter)
	assert.ErrorIs(t, c.SetParameter("value", "not a float"), ierrors.ErrParameterTypeMismatch)
}

func TestRegistry_LookupUnknownTag(t *testing.T) {
	r := component.NewRegistry[float64]()
	_, err := r.Lookup("NoSuchComponent")
	assert.ErrorIs(t, err, ierrors.ErrUnknownTag)
}

func TestRegistry_RegisterBuiltinsRoundTripsConstant(t *testing.T) {
	r := component.NewRegistry[float64]()
	component.RegisterBuiltins[float64](r)

	codec, err := r.Lookup("Constant")
	require.NoError(t, err)

	c := component.NewConstant[float64](7)
	params, err := codec.EncodeParams(c)
	require.NoError(t, err)
	assert.Equal(t, 7.0, params["value"])

	decoded, err := codec.DecodeParams(params)
	require.NoError(t, err)
	assert.Equal(t, 7.0, decoded.Compute(geom.Vec3[float64]{}, nil))
}
