// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chunk - split payloads to fit output capacity and join them
// back together
package chunk

import (
	"bytes"
	"sort"

	"github.com/bitmark-inc/bwsdata/fault"
)

// MaximumChunks - the sequence and total fields are 16 bit
const MaximumChunks = 65535

// Piece - one chunk with its position
type Piece struct {
	Sequence uint16
	Total    uint16
	Data     []byte
}

// Count - number of chunks needed for length bytes
func Count(length int, capacity int) int {
	if length <= 0 || capacity <= 0 {
		return 0
	}
	return (length + capacity - 1) / capacity
}

// Split - partition a payload left to right into slices of at most
// capacity bytes
//
// the slices share the payload's underlying array
func Split(payload []byte, capacity int) ([][]byte, error) {
	if capacity <= 0 {
		return nil, fault.ErrInvalidCapacity
	}
	if 0 == len(payload) {
		return nil, fault.ErrEmptyPayload
	}

	n := Count(len(payload), capacity)
	if n > MaximumChunks {
		return nil, fault.ErrTooManyChunks
	}

	chunks := make([][]byte, 0, n)
	for start := 0; start < len(payload); start += capacity {
		end := start + capacity
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end:end])
	}
	return chunks, nil
}

// Pieces - split and number a payload
func Pieces(payload []byte, capacity int) ([]Piece, error) {
	chunks, err := Split(payload, capacity)
	if nil != err {
		return nil, err
	}
	total := uint16(len(chunks))
	pieces := make([]Piece, len(chunks))
	for i, c := range chunks {
		pieces[i] = Piece{
			Sequence: uint16(i),
			Total:    total,
			Data:     c,
		}
	}
	return pieces, nil
}

// Join - concatenate pieces in ascending sequence order
//
// the input may be in any order and is not modified; identical
// duplicates are tolerated
//
// errors:
//   ErrAmbiguousTotal  pieces disagree on total
//   ErrDuplicateChunk  two different pieces claim the same sequence
//   ErrMissingChunk    some sequence in 0..total-1 is absent
//                      (wrapped in a fault.ChunkError naming the first gap)
func Join(pieces []Piece) ([]byte, error) {
	if 0 == len(pieces) {
		return nil, fault.ErrMissingChunk
	}

	total := pieces[0].Total
	for _, p := range pieces[1:] {
		if p.Total != total {
			return nil, fault.ErrAmbiguousTotal
		}
	}
	if 0 == total {
		return nil, fault.ErrMalformedEnvelope
	}

	ordered := make([]Piece, len(pieces))
	copy(ordered, pieces)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	joined := make([]byte, 0, len(ordered)*len(ordered[0].Data))
	next := uint16(0)
	for i, p := range ordered {
		if p.Sequence >= total {
			return nil, fault.ErrMalformedEnvelope
		}
		if i > 0 && p.Sequence == ordered[i-1].Sequence {
			if !bytes.Equal(p.Data, ordered[i-1].Data) {
				return nil, fault.ForChunk(fault.ErrDuplicateChunk, int(p.Sequence), "")
			}
			continue
		}
		if p.Sequence != next {
			return nil, fault.ForChunk(fault.ErrMissingChunk, int(next), "")
		}
		joined = append(joined, p.Data...)
		next += 1
	}
	if uint32(next) != uint32(total) {
		return nil, fault.ForChunk(fault.ErrMissingChunk, int(next), "")
	}
	return joined, nil
}

// Missing - list the sequences absent from a set of pieces for the
// given total
func Missing(pieces []Piece, total uint16) []uint16 {
	seen := make(map[uint16]struct{}, len(pieces))
	for _, p := range pieces {
		seen[p.Sequence] = struct{}{}
	}
	missing := make([]uint16, 0)
	for s := uint32(0); s < uint32(total); s += 1 {
		if _, ok := seen[uint16(s)]; !ok {
			missing = append(missing, uint16(s))
		}
	}
	return missing
}
