// SPDX-License-Identifier: MIT

package obs

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// wireVersion is bumped whenever the envelope layout changes.
const wireVersion = 1

// maxBufferBytes bounds every decoded buffer.
const maxBufferBytes = 1 << 30

// encMode uses Core Deterministic Encoding so equal observations always
// produce identical bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("obs: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("obs: CBOR decoder initialization failed: " + err.Error())
	}
}

type wireBuffer struct {
	Comp Compression `cbor:"c"`
	Data []byte      `cbor:"d"`
}

type envelope struct {
	Version   uint8      `cbor:"v"`
	Layout    Layout     `cbor:"layout"`
	NumNodes  int        `cbor:"num_nodes"`
	Step      int        `cbor:"step"`
	Nodes     wireBuffer `cbor:"nodes"`
	Edges     wireBuffer `cbor:"edges"`
	Senders   wireBuffer `cbor:"senders"`
	Receivers wireBuffer `cbor:"receivers"`
}

// Marshal encodes o as CBOR with each buffer compressed by c. Buffers that
// do not shrink are stored raw.
func Marshal(o *Observation, c Compression) ([]byte, error) {
	env := envelope{Version: wireVersion, Layout: o.Layout, NumNodes: o.NumNodes, Step: o.Step}
	raws := [][]byte{float32Bytes(o.Nodes), float32Bytes(o.Edges), int32Bytes(o.Senders), int32Bytes(o.Receivers)}
	dsts := []*wireBuffer{&env.Nodes, &env.Edges, &env.Senders, &env.Receivers}
	for i, raw := range raws {
		data, used, err := compress(raw, c)
		if err != nil {
			return nil, err
		}
		*dsts[i] = wireBuffer{Comp: used, Data: data}
	}
	return encMode.Marshal(env)
}

// Unmarshal decodes a payload produced by Marshal.
func Unmarshal(data []byte) (*Observation, error) {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Version != wireVersion {
		return nil, fmt.Errorf("%w: wire version %d", ErrMalformed, env.Version)
	}
	l := env.Layout
	if l.MaxNodes < 0 || l.EdgesPerNode < 0 || l.NodeWidth < 0 || l.EdgeWidth < 0 {
		return nil, fmt.Errorf("%w: layout %+v", ErrMalformed, l)
	}
	if !bufferFits(l.MaxNodes, l.NodeWidth) || !bufferFits(l.MaxNodes, l.EdgesPerNode, l.EdgeWidth) ||
		!bufferFits(l.MaxNodes, l.EdgesPerNode) {
		return nil, fmt.Errorf("%w: layout %+v exceeds %d bytes per buffer", ErrMalformed, l, maxBufferBytes)
	}
	if env.NumNodes < 0 || env.NumNodes > l.MaxNodes {
		return nil, fmt.Errorf("%w: %d nodes with capacity %d", ErrMalformed, env.NumNodes, l.MaxNodes)
	}
	o := &Observation{Layout: l, NumNodes: env.NumNodes, Step: env.Step}

	nodes, err := decompress(env.Nodes.Data, env.Nodes.Comp, 4*l.MaxNodes*l.NodeWidth)
	if err != nil {
		return nil, err
	}
	edges, err := decompress(env.Edges.Data, env.Edges.Comp, 4*l.MaxEdges()*l.EdgeWidth)
	if err != nil {
		return nil, err
	}
	senders, err := decompress(env.Senders.Data, env.Senders.Comp, 4*l.MaxEdges())
	if err != nil {
		return nil, err
	}
	receivers, err := decompress(env.Receivers.Data, env.Receivers.Comp, 4*l.MaxEdges())
	if err != nil {
		return nil, err
	}
	o.Nodes, o.Edges = bytesFloat32(nodes), bytesFloat32(edges)
	o.Senders, o.Receivers = bytesInt32(senders), bytesInt32(receivers)
	return o, nil
}

// bufferFits reports whether a float32/int32 buffer of prod(dims) entries
// stays within maxBufferBytes. dims are non-negative.
func bufferFits(dims ...int) bool {
	n := int64(4)
	for _, d := range dims {
		if d != 0 && n > maxBufferBytes/int64(d) {
			return false
		}
		n *= int64(d)
	}
	return n <= maxBufferBytes
}

func float32Bytes(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

func bytesFloat32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

func int32Bytes(v []int32) []byte {
	out := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(x))
	}
	return out
}

func bytesInt32(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}
