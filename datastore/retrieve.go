// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/bitmark-inc/bwsdata/chunk"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/reference"
)

// Chunk - one transaction contributing to a result
type Chunk struct {
	Sequence int    `json:"sequence"` // -1 if the envelope could not be decoded
	Total    int    `json:"total"`
	TxId     string `json:"transaction_id"`
	Height   uint64 `json:"height"` // zero while unconfirmed
	Size     int    `json:"size"`
}

// Result - one payload found for a reference
//
// Payload is only set when Complete; otherwise Err says what is wrong
// and Chunks lists what was found
type Result struct {
	Reference string          `json:"reference"`
	State     RetrieveState   `json:"state"`
	Complete  bool            `json:"complete"`
	Action    envelope.Action `json:"action,omitempty"` // unset if no chunk decoded
	Payload   []byte          `json:"payload,omitempty"`
	Digest    string          `json:"digest,omitempty"`
	TxIds     []string        `json:"transaction_ids"`
	Heights   []uint64        `json:"heights"`
	Chunks    []Chunk         `json:"chunks"`
	Missing   []uint16        `json:"missing,omitempty"`
	Error     string          `json:"error,omitempty"`
	Err       error           `json:"-"`
}

// Confirmed - true if every chunk is in a block
func (r *Result) Confirmed() bool {
	if 0 == len(r.Chunks) {
		return false
	}
	for _, c := range r.Chunks {
		if 0 == c.Height {
			return false
		}
	}
	return true
}

// a decoded group member
type member struct {
	candidate *Candidate
	envelope  *envelope.Envelope
	err       error
}

// Retrieve - find and reassemble the payload stored under reference
//
// maxBlocks of zero or less uses the manager's default.  Nothing found
// is an empty list with a nil error.  A group that cannot be joined is
// returned with State RetrievePartial and Err set.
func (m *Manager) Retrieve(ctx context.Context, ref string, maxBlocks int) ([]Result, error) {

	txId, err := reference.Parse(ref)
	if nil != err {
		return nil, err
	}
	if maxBlocks <= 0 {
		maxBlocks = m.maxBlocks
	}

	state := RetrieveScanning
	m.log.Debugf("retrieve: %s  %s  blocks: %d", txId, state, maxBlocks)

	candidates, err := m.client.Scan(ctx, m.codec.Tag(), maxBlocks)
	if nil != err {
		m.log.Errorf("retrieve: %s  scan error: %s", txId, err)
		return nil, err
	}

	state = RetrieveGrouping
	m.log.Debugf("retrieve: %s  %s  candidates: %d", txId, state, len(candidates))

	candidates, err = m.ancestors(ctx, candidates, txId)
	if nil != err {
		m.log.Errorf("retrieve: %s  ancestor error: %s", txId, err)
		return nil, err
	}

	group := m.link(candidates, txId)
	if 0 == len(group) {
		m.log.Infof("retrieve: %s  %s", txId, RetrieveNotFound)
		return []Result{}, nil
	}

	result := m.assemble(txId, group)
	m.log.Infof("retrieve: %s  %s  chunks: %d", txId, result.State, len(result.Chunks))

	return []Result{result}, nil
}

// collect the reference transaction and every candidate reachable by
// following spends from it where each step advances the sequence by
// one and keeps the same total
//
// the reference is treated as sequence 0 of an unknown total when its
// own transaction was not found or could not be decoded
func (m *Manager) link(candidates []Candidate, txId string) []member {

	bySpend := make(map[string][]int)
	for i := range candidates {
		for _, input := range candidates[i].Inputs {
			bySpend[input] = append(bySpend[input], i)
		}
	}

	group := make([]member, 0)
	visited := make(map[string]struct{})

	type step struct {
		txId     string
		sequence uint16
		total    uint16 // zero if unknown
	}
	queue := []step{{txId: txId}}
	visited[txId] = struct{}{}

	for i := range candidates {
		if txId != candidates[i].TxId {
			continue
		}
		e, err := m.codec.Decode(candidates[i].Data)
		group = append(group, member{candidate: &candidates[i], envelope: e, err: err})
		if nil == err {
			queue[0].sequence = e.Sequence
			queue[0].total = e.Total
		}
		break
	}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		// single envelopes and last chunks have no successor
		if 0 != parent.total && uint32(parent.sequence)+1 >= uint32(parent.total) {
			continue
		}

		for _, i := range bySpend[parent.txId] {
			c := &candidates[i]
			if _, ok := visited[c.TxId]; ok {
				continue
			}
			e, err := m.codec.Decode(c.Data)
			if nil != err {
				visited[c.TxId] = struct{}{}
				group = append(group, member{candidate: c, err: err})
				continue
			}

			// a later unrelated store may spend this change too
			if !successor(e, parent.sequence, parent.total) {
				m.log.Debugf("tx id: %s  spends: %s  not a successor", c.TxId, parent.txId)
				continue
			}
			visited[c.TxId] = struct{}{}
			group = append(group, member{candidate: c, envelope: e})
			queue = append(queue, step{txId: c.TxId, sequence: e.Sequence, total: e.Total})
		}
	}
	return group
}

// true if e can follow a chunk with the given sequence and total, a
// zero total matches any
func successor(e *envelope.Envelope, sequence uint16, total uint16) bool {
	if !e.Chunked() || uint32(e.Sequence) != uint32(sequence)+1 {
		return false
	}
	return 0 == total || e.Total == total
}

// a chunk found while walking back from a candidate
type ancestor struct {
	candidate Candidate
	envelope  *envelope.Envelope
}

// add the chunks between the reference and any candidate whose own
// predecessor was not scanned
//
// each such candidate is followed back through the inputs it spends,
// fetching transactions from the node, until a chunk at sequence 0 is
// reached.  Only chains that end at the reference are added.
func (m *Manager) ancestors(ctx context.Context, candidates []Candidate, txId string) ([]Candidate, error) {

	known := make(map[string]int, len(candidates))
	for i := range candidates {
		known[candidates[i].TxId] = i
	}

	linked := map[string]struct{}{txId: {}}
	dead := make(map[string]struct{})
	fetched := make(map[string]*ancestor)

	// a transaction as a chunk, nil if it is not one
	lookup := func(id string) (*ancestor, error) {
		if a, ok := fetched[id]; ok {
			return a, nil
		}
		var c Candidate
		if i, ok := known[id]; ok {
			c = candidates[i]
		} else {
			var err error
			c, err = m.client.Transaction(ctx, id, m.codec.Tag())
			if fault.IsErrNotFound(err) {
				fetched[id] = nil
				return nil, nil
			}
			if nil != err {
				return nil, err
			}
		}
		e, err := m.codec.Decode(c.Data)
		if nil != err || !e.Chunked() {
			fetched[id] = nil
			return nil, nil
		}
		a := &ancestor{candidate: c, envelope: e}
		fetched[id] = a
		return a, nil
	}

	n := len(candidates)
	for i := 0; i < n; i += 1 {
		start := candidates[i]
		if _, ok := linked[start.TxId]; ok {
			continue
		}
		e, err := m.codec.Decode(start.Data)
		if nil != err || !e.Chunked() || 0 == e.Sequence || spendsScanned(start, known, txId) {
			continue
		}

		m.log.Debugf("retrieve: %s  walk back from tx id: %s  sequence: %d", txId, start.TxId, e.Sequence)

		path := []string{start.TxId}
		current := &ancestor{candidate: start, envelope: e}
		found := false
	walk:
		for {
			if _, ok := linked[current.candidate.TxId]; ok {
				found = true
				break walk
			}
			if _, ok := dead[current.candidate.TxId]; ok || 0 == current.envelope.Sequence {
				break walk
			}
			var previous *ancestor
			for _, input := range current.candidate.Inputs {
				a, err := lookup(input)
				if nil != err {
					return nil, err
				}
				if nil != a && successor(current.envelope, a.envelope.Sequence, a.envelope.Total) {
					previous = a
					break
				}

				// the reference itself could not be fetched
				if nil == a && input == txId && 1 == current.envelope.Sequence {
					found = true
					break walk
				}
			}
			if nil == previous {
				break walk
			}
			current = previous
			path = append(path, current.candidate.TxId)
		}

		for _, id := range path {
			if !found {
				dead[id] = struct{}{}
				continue
			}
			linked[id] = struct{}{}
			if _, ok := known[id]; ok {
				continue
			}
			known[id] = len(candidates)
			candidates = append(candidates, fetched[id].candidate)
			m.log.Debugf("retrieve: %s  added tx id: %s  height: %d", txId, id, fetched[id].candidate.Height)
		}
	}
	return candidates, nil
}

// true if any input of c is the reference or a scanned candidate
func spendsScanned(c Candidate, known map[string]int, txId string) bool {
	for _, input := range c.Inputs {
		if input == txId {
			return true
		}
		if _, ok := known[input]; ok {
			return true
		}
	}
	return false
}

// join a group into a result
func (m *Manager) assemble(txId string, group []member) Result {

	sort.SliceStable(group, func(i, j int) bool {
		return sequenceOf(group[i]) < sequenceOf(group[j])
	})

	result := Result{
		Reference: txId,
		State:     RetrieveReassembling,
		TxIds:     make([]string, 0, len(group)),
		Heights:   make([]uint64, 0, len(group)),
		Chunks:    make([]Chunk, 0, len(group)),
	}

	pieces := make([]chunk.Piece, 0, len(group))
	var firstErr error
	for _, g := range group {
		c := Chunk{
			Sequence: sequenceOf(g),
			TxId:     g.candidate.TxId,
			Height:   g.candidate.Height,
		}
		if nil != g.err {
			m.log.Warnf("retrieve: tx id: %s  decode error: %s", g.candidate.TxId, g.err)
			if nil == firstErr {
				firstErr = fault.ForChunk(g.err, -1, g.candidate.TxId)
			}
		} else {
			c.Total = int(g.envelope.Total)
			c.Size = len(g.envelope.Payload)
			result.Action = g.envelope.Action
			pieces = append(pieces, chunk.Piece{
				Sequence: g.envelope.Sequence,
				Total:    g.envelope.Total,
				Data:     g.envelope.Payload,
			})
		}
		result.TxIds = append(result.TxIds, c.TxId)
		result.Heights = append(result.Heights, c.Height)
		result.Chunks = append(result.Chunks, c)
	}

	if 0 != len(pieces) {
		result.Missing = chunk.Missing(pieces, pieces[0].Total)
	}

	if nil == firstErr {
		payload, err := chunk.Join(pieces)
		if nil == err {
			digest := blake3.Sum256(payload)
			result.Complete = true
			result.Payload = payload
			result.Digest = hex.EncodeToString(digest[:])
			return result
		}
		firstErr = withTxId(err, group)
	}

	result.State = RetrievePartial
	result.Err = firstErr
	result.Error = firstErr.Error()
	return result
}

func sequenceOf(g member) int {
	if nil == g.envelope {
		return -1
	}
	return int(g.envelope.Sequence)
}

// add the transaction id to a chunk error when the sequence is known
// to the group
func withTxId(err error, group []member) error {
	chunkErr, ok := err.(*fault.ChunkError)
	if !ok || "" != chunkErr.TxId {
		return err
	}
	for _, g := range group {
		if sequenceOf(g) == chunkErr.Sequence {
			return fault.ForChunk(chunkErr.Err, chunkErr.Sequence, g.candidate.TxId)
		}
	}
	return err
}
