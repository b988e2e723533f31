// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
)

// node reply when a mempool transaction was mined or evicted between
// listing and fetching
const rpcInvalidAddressOrKey = -5

// collects candidates from concurrent fetches
type collector struct {
	sync.Mutex
	found map[string]datastore.Candidate
}

// a transaction seen in both mempool and a block is kept at its
// confirmed height
func (c *collector) add(candidates []datastore.Candidate) {
	c.Lock()
	defer c.Unlock()
	for _, candidate := range candidates {
		if previous, ok := c.found[candidate.TxId]; ok && previous.Height >= candidate.Height {
			continue
		}
		c.found[candidate.TxId] = candidate
	}
}

// Scan - find all outputs carrying tag in the mempool and the most
// recent maxBlocks blocks
//
// mempool candidates have height zero; the result is ordered by height
// then transaction id
func (c *Client) Scan(ctx context.Context, tag envelope.Tag, maxBlocks int) ([]datastore.Candidate, error) {
	if maxBlocks < 0 {
		return nil, fault.ErrInvalidCount
	}

	result := &collector{
		found: make(map[string]datastore.Candidate),
	}

	if err := c.scanMempool(ctx, tag, result); nil != err {
		return nil, err
	}

	if maxBlocks > 0 {
		if err := c.scanBlocks(ctx, tag, maxBlocks, result); nil != err {
			return nil, err
		}
	}

	candidates := make([]datastore.Candidate, 0, len(result.found))
	for _, candidate := range result.found {
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Height != candidates[j].Height {
			return candidates[i].Height < candidates[j].Height
		}
		return candidates[i].TxId < candidates[j].TxId
	})

	c.log.Infof("scan: blocks: %d  candidates: %d", maxBlocks, len(candidates))
	return candidates, nil
}

func (c *Client) scanMempool(ctx context.Context, tag envelope.Tag, result *collector) error {

	var pool []string
	if err := c.call(ctx, "getrawmempool", []interface{}{}, &pool); nil != err {
		return err
	}
	c.log.Debugf("mempool transactions: %d", len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)

	for _, txId := range pool {
		txId := txId
		g.Go(func() error {
			var tx transaction
			err := c.call(gctx, "getrawtransaction", []interface{}{txId, 1}, &tx)

			var rpcErr *RPCError
			if errors.As(err, &rpcErr) && rpcInvalidAddressOrKey == rpcErr.Code {
				c.log.Debugf("mempool tx id: %s  gone", txId)
				return nil
			}
			if nil != err {
				return err
			}
			if candidate, ok := extractCandidate(&tx, tag, 0); ok {
				result.add([]datastore.Candidate{candidate})
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Client) scanBlocks(ctx context.Context, tag envelope.Tag, maxBlocks int, result *collector) error {

	var count uint64
	if err := c.call(ctx, "getblockcount", []interface{}{}, &count); nil != err {
		return err
	}

	lowest := uint64(0)
	if count+1 > uint64(maxBlocks) {
		lowest = count + 1 - uint64(maxBlocks)
	}
	c.log.Debugf("scan blocks: %d to %d", lowest, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)

	for height := count; ; height -= 1 {
		height := height
		g.Go(func() error {
			if err := c.limiter.Wait(gctx); nil != err {
				return transportError(gctx, err)
			}
			var hash string
			if err := c.call(gctx, "getblockhash", []interface{}{height}, &hash); nil != err {
				return err
			}
			candidates, err := c.blockCandidates(gctx, hash, tag)
			if nil != err {
				return err
			}
			result.add(candidates)
			return nil
		})
		if height == lowest {
			break
		}
	}
	return g.Wait()
}

// candidates of one block, cached by block hash and tag
func (c *Client) blockCandidates(ctx context.Context, hash string, tag envelope.Tag) ([]datastore.Candidate, error) {

	key := hash + ":" + tag.String()
	if cached, ok := c.blocks.Get(key); ok {
		return cached.([]datastore.Candidate), nil
	}

	var blk block
	if err := c.call(ctx, "getblock", []interface{}{hash, 2}, &blk); nil != err {
		return nil, err
	}
	if hash != blk.Hash {
		return nil, fault.ErrUnexpectedNodeResponse
	}

	c.log.Debugf("block: %d  hash: %s  transactions: %d", blk.Height, blk.Hash, len(blk.Tx))

	candidates := make([]datastore.Candidate, 0)
	for i := range blk.Tx {
		if candidate, ok := extractCandidate(&blk.Tx[i], tag, blk.Height); ok {
			candidates = append(candidates, candidate)
		}
	}

	c.blocks.SetDefault(key, candidates)
	return candidates, nil
}

// Transaction - fetch one transaction and its output carrying tag
//
// confirmed transactions outside the wallet need a node with txindex
// enabled; anything the node cannot find is fault.ErrNotFound
func (c *Client) Transaction(ctx context.Context, txId string, tag envelope.Tag) (datastore.Candidate, error) {

	if err := c.limiter.Wait(ctx); nil != err {
		return datastore.Candidate{}, transportError(ctx, err)
	}

	var tx transaction
	err := c.call(ctx, "getrawtransaction", []interface{}{txId, 1}, &tx)

	var rpcErr *RPCError
	if errors.As(err, &rpcErr) && rpcInvalidAddressOrKey == rpcErr.Code {
		c.log.Debugf("tx id: %s  not found", txId)
		return datastore.Candidate{}, fault.ErrNotFound
	}
	if nil != err {
		return datastore.Candidate{}, err
	}
	if txId != tx.TxId {
		return datastore.Candidate{}, fault.ErrUnexpectedNodeResponse
	}

	height := uint64(0)
	if "" != tx.BlockHash {
		var header blockHeader
		if err := c.call(ctx, "getblockheader", []interface{}{tx.BlockHash, true}, &header); nil != err {
			return datastore.Candidate{}, err
		}
		height = header.Height
	}

	candidate, ok := extractCandidate(&tx, tag, height)
	if !ok {
		return datastore.Candidate{}, fault.ErrNotFound
	}
	c.log.Debugf("tx id: %s  height: %d", txId, height)
	return candidate, nil
}

// first output carrying tag, with the transaction ids the inputs spend
func extractCandidate(tx *transaction, tag envelope.Tag, height uint64) (datastore.Candidate, bool) {
	for _, out := range tx.Vout {
		data, ok := extractData(out.ScriptPubKey.Hex)
		if !ok || !envelope.Packed(data).HasTag(tag) {
			continue
		}

		inputs := make([]string, 0, len(tx.Vin))
		for _, in := range tx.Vin {
			if "" == in.Coinbase && "" != in.TxId {
				inputs = append(inputs, in.TxId)
			}
		}
		return datastore.Candidate{
			TxId:   tx.TxId,
			Inputs: inputs,
			Data:   data,
			Height: height,
		}, true
	}
	return datastore.Candidate{}, false
}
