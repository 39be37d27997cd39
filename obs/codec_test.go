package obs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/obs"
)

func encodeSample(t *testing.T, opts obs.Options) *obs.Observation {
	t.Helper()
	m := lineMap(t, 6)
	enc, err := obs.NewEncoder(opts, m, 2)
	require.NoError(t, err)
	o, err := enc.Encode(stateAt(t, m, []int{1, 4}, 3))
	require.NoError(t, err)
	return o
}

func TestFlatCodec_PackUnpack(t *testing.T) {
	opts := baseOptions()
	opts.MaxNodes = 10
	opts.LastEdge = true
	o := encodeSample(t, opts)

	c := obs.FlatCodec{Layout: o.Layout}
	flat, err := c.Pack(o)
	require.NoError(t, err)
	require.Len(t, flat, c.Size())
	assert.Equal(t, 10, c.NodesFromSize(len(flat)))
	assert.Equal(t, float32(3), flat[len(flat)-1])

	g, err := c.Unpack(flat)
	require.NoError(t, err)
	want := obs.Decode(o)
	assert.Len(t, g.Nodes, 10)
	assert.Equal(t, want.Nodes, g.Nodes[:o.NumNodes])
	assert.Equal(t, want.Edges, g.Edges)
	assert.Equal(t, want.Step, g.Step)
}

func TestFlatCodec_Errors(t *testing.T) {
	o := encodeSample(t, baseOptions())
	c := obs.FlatCodec{Layout: o.Layout}

	_, err := c.Unpack(make([]float32, c.Size()-1))
	require.ErrorIs(t, err, obs.ErrMalformed)

	other := c
	other.Layout.MaxNodes++
	_, err = other.Pack(o)
	require.ErrorIs(t, err, obs.ErrMalformed)
}

func TestUnavailable(t *testing.T) {
	var c obs.TensorCodec = obs.Unavailable{Reason: "not built"}
	_, err := c.Pack(&obs.Observation{})
	require.ErrorIs(t, err, obs.ErrCodecUnavailable)
	_, err = c.Unpack(nil)
	require.ErrorIs(t, err, obs.ErrCodecUnavailable)
}

func TestWire_RoundTrip(t *testing.T) {
	opts := baseOptions()
	opts.MaxNodes = 64
	opts.PosDelta = true
	opts.NodeHistory = true
	m := lineMap(t, 6)
	enc, err := obs.NewEncoder(opts, m, 2)
	require.NoError(t, err)
	s := stateAt(t, m, []int{1, 4}, 3)
	s.History = []bool{false, true, false, false, true, false}
	o, err := enc.Encode(s)
	require.NoError(t, err)

	for _, c := range []obs.Compression{obs.CompressNone, obs.CompressLZ4, obs.CompressZstd, obs.CompressBG4LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := obs.Marshal(o, c)
			require.NoError(t, err)
			back, err := obs.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, o, back)
		})
	}
}

func TestWire_Compresses(t *testing.T) {
	opts := baseOptions()
	opts.MaxNodes = 256
	o := encodeSample(t, opts)
	raw, err := obs.Marshal(o, obs.CompressNone)
	require.NoError(t, err)
	packed, err := obs.Marshal(o, obs.CompressZstd)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(raw))
}

func TestUnmarshal_Malformed(t *testing.T) {
	_, err := obs.Unmarshal([]byte{0xff, 0x00, 0x13})
	require.ErrorIs(t, err, obs.ErrMalformed)

	opts := baseOptions()
	opts.MaxNodes = 64
	valid := encodeSample(t, opts)

	tests := []struct {
		name   string
		mutate func(o *obs.Observation)
	}{
		{"node count above capacity", func(o *obs.Observation) { o.NumNodes = 1000 }},
		{"negative node count", func(o *obs.Observation) { o.NumNodes = -1 }},
		{"oversized layout", func(o *obs.Observation) { o.Layout.MaxNodes = 1 << 40 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := valid.Clone()
			tc.mutate(o)
			data, err := obs.Marshal(o, obs.CompressNone)
			require.NoError(t, err)
			_, err = obs.Unmarshal(data)
			require.ErrorIs(t, err, obs.ErrMalformed)
		})
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    obs.Compression
		wantErr bool
	}{
		{"none", obs.CompressNone, false},
		{"lz4", obs.CompressLZ4, false},
		{"zstd", obs.CompressZstd, false},
		{"bg4_lz4", obs.CompressBG4LZ4, false},
		{"gzip", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := obs.ParseCompression(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	assert.Equal(t, "unknown(9)", obs.Compression(9).String())
}
