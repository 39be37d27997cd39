// SPDX-License-Identifier: MIT

package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/henghenghahei849/gym-flock/obs"
)

var (
	// ErrClosed indicates a write after Close.
	ErrClosed = errors.New("trace: writer is closed")

	// ErrCorrupt indicates a stream that does not decode as records.
	ErrCorrupt = errors.New("trace: corrupt stream")
)

// Record is one step of an episode. Obs is nil for records read with a nil
// payload.
type Record struct {
	Episode uuid.UUID
	Step    int
	Actions []int
	Reward  int
	Done    bool
	Obs     *obs.Observation
}

type wireRecord struct {
	Episode []byte `cbor:"1,keyasint"`
	Step    int    `cbor:"2,keyasint"`
	Actions []int  `cbor:"3,keyasint"`
	Reward  int    `cbor:"4,keyasint"`
	Done    bool   `cbor:"5,keyasint"`
	Obs     []byte `cbor:"6,keyasint,omitempty"`
}

var encMode cbor.EncMode

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("trace: CBOR encoder initialization failed: " + err.Error())
	}
}

// Writer appends records to a zstd stream.
type Writer struct {
	zw     *zstd.Encoder
	enc    *cbor.Encoder
	comp   obs.Compression
	closed bool
	n      int
}

// NewWriter returns a Writer on w. Observations are stored with comp.
func NewWriter(w io.Writer, comp obs.Compression) (*Writer, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return &Writer{zw: zw, enc: encMode.NewEncoder(zw), comp: comp}, nil
}

// Write appends rec.
func (w *Writer) Write(rec Record) error {
	if w.closed {
		return ErrClosed
	}
	wr := wireRecord{
		Episode: rec.Episode[:],
		Step:    rec.Step,
		Actions: rec.Actions,
		Reward:  rec.Reward,
		Done:    rec.Done,
	}
	if rec.Obs != nil {
		payload, err := obs.Marshal(rec.Obs, w.comp)
		if err != nil {
			return fmt.Errorf("Write: step %d: %w", rec.Step, err)
		}
		wr.Obs = payload
	}
	if err := w.enc.Encode(wr); err != nil {
		return fmt.Errorf("Write: step %d: %w", rec.Step, err)
	}
	w.n++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.n }

// Close flushes the stream. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.zw.Close()
}

// Reader iterates the records of a stream written by Writer.
type Reader struct {
	zr  *zstd.Decoder
	dec *cbor.Decoder
}

// NewReader returns a Reader on r. Depending on r the stream header is
// checked here or on the first Next.
func NewReader(r io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &Reader{zr: zr, dec: cbor.NewDecoder(zr)}, nil
}

// Next returns the next record, or io.EOF at the end of the stream.
func (r *Reader) Next() (*Record, error) {
	var wr wireRecord
	if err := r.dec.Decode(&wr); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	id, err := uuid.FromBytes(wr.Episode)
	if err != nil {
		return nil, fmt.Errorf("%w: episode id: %v", ErrCorrupt, err)
	}
	rec := &Record{
		Episode: id,
		Step:    wr.Step,
		Actions: wr.Actions,
		Reward:  wr.Reward,
		Done:    wr.Done,
	}
	if len(wr.Obs) > 0 {
		if rec.Obs, err = obs.Unmarshal(wr.Obs); err != nil {
			return nil, fmt.Errorf("step %d: %w", wr.Step, err)
		}
	}
	return rec, nil
}

// All reads every remaining record.
func (r *Reader) All() ([]*Record, error) {
	var out []*Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Close releases the decoder.
func (r *Reader) Close() { r.zr.Close() }
