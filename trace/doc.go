// SPDX-License-Identifier: MIT

// Package trace records coverage episodes step by step.
//
// A trace is a zstd stream holding a sequence of CBOR-encoded Record
// values. Each record carries the episode id, the step index, the actions
// applied, the reward and the observation after the step in the obs wire
// format, so a trace can be replayed into a learner without the simulator.
//
//	w, err := trace.NewWriter(f, obs.CompressZstd)
//	...
//	err = w.Write(trace.Record{Episode: id, Step: 1, Actions: a, Obs: o})
//	...
//	err = w.Close()
//
// Reading:
//
//	r, err := trace.NewReader(f)
//	defer r.Close()
//	for {
//		rec, err := r.Next()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
//
// Writer and Reader are not safe for concurrent use.
package trace
