// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tracedb wraps a state reader so every read is recorded into an access trace.
package tracedb

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/exectrace/accesstrace"
	"github.com/vechain/exectrace/cache"
	"github.com/vechain/exectrace/log"
	"github.com/vechain/exectrace/thor"
)

var logger = log.WithContext("pkg", "tracedb")

const defaultCodeCacheSize = 512

// Account is the state of an account as seen by an execution unit.
type Account struct {
	Balance  *big.Int
	Energy   *big.Int
	CodeHash thor.Bytes32
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance, zero energy and no code.
func (a *Account) IsEmpty() bool {
	return sign(a.Balance) == 0 &&
		sign(a.Energy) == 0 &&
		(a.CodeHash.IsZero() || a.CodeHash == thor.EmptyCodeHash)
}

func sign(v *big.Int) int {
	if v == nil {
		return 0
	}
	return v.Sign()
}

// Reader reads state elements.
// Account returns nil without error for an account that does not exist.
type Reader interface {
	Account(addr thor.Address) (*Account, error)
	Storage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error)
	Code(hash thor.Bytes32) ([]byte, error)
	BlockHash(num uint64) (thor.Bytes32, error)
}

type options struct {
	codeCacheSize int
}

// Option configures a DB.
type Option func(*options)

// WithCodeCache sets how many code blobs are kept in memory. 0 disables the cache.
func WithCodeCache(size int) Option {
	return func(o *options) {
		o.codeCacheSize = size
	}
}

// DB is a Reader that records every access into a trace before delegating.
// Like the trace it feeds, a DB is owned by a single execution unit.
type DB struct {
	r         Reader
	trace     *accesstrace.Trace
	codeCache *cache.LRU[thor.Bytes32, []byte]
}

var _ Reader = (*DB)(nil)

// New creates a DB reading from r.
func New(r Reader, opts ...Option) *DB {
	o := options{codeCacheSize: defaultCodeCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	db := &DB{
		r:     r,
		trace: accesstrace.New(),
	}
	if o.codeCacheSize > 0 {
		// size is positive, NewLRU can't fail
		db.codeCache, _ = cache.NewLRU[thor.Bytes32, []byte](o.codeCacheSize)
	}
	return db
}

// Account implements Reader.
func (db *DB) Account(addr thor.Address) (*Account, error) {
	db.trace.RecordAccount(addr)

	acc, err := db.r.Account(addr)
	if err != nil {
		metricReadErrors().AddWithLabel(1, map[string]string{"kind": "account"})
		return nil, errors.WithMessagef(err, "read account %v", addr)
	}
	return acc, nil
}

// Storage implements Reader.
// The account must have been read before, otherwise it panics with *accesstrace.InvariantError.
func (db *DB) Storage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	db.trace.RecordStorage(addr, key)

	v, err := db.r.Storage(addr, key)
	if err != nil {
		metricReadErrors().AddWithLabel(1, map[string]string{"kind": "storage"})
		return thor.Bytes32{}, errors.WithMessagef(err, "read storage %v of %v", key, addr)
	}
	return v, nil
}

// Code implements Reader.
func (db *DB) Code(hash thor.Bytes32) ([]byte, error) {
	db.trace.RecordCode(hash)

	var (
		code []byte
		err  error
	)
	if db.codeCache == nil {
		code, err = db.r.Code(hash)
	} else {
		var cached bool
		code, cached, err = db.codeCache.GetOrLoad(hash, db.r.Code)
		if cached {
			metricCodeCache().AddWithLabel(1, map[string]string{"event": "hit"})
		} else {
			metricCodeCache().AddWithLabel(1, map[string]string{"event": "miss"})
		}
	}
	if err != nil {
		metricReadErrors().AddWithLabel(1, map[string]string{"kind": "code"})
		return nil, errors.WithMessagef(err, "read code %v", hash)
	}
	return code, nil
}

// BlockHash implements Reader.
func (db *DB) BlockHash(num uint64) (thor.Bytes32, error) {
	db.trace.RecordBlockNumber(num)

	h, err := db.r.BlockHash(num)
	if err != nil {
		metricReadErrors().AddWithLabel(1, map[string]string{"kind": "blockhash"})
		return thor.Bytes32{}, errors.WithMessagef(err, "read hash of block %v", num)
	}
	return h, nil
}

// Trace returns the live trace. Accesses made through db keep landing in it
// until the next Harvest.
func (db *DB) Trace() *accesstrace.Trace {
	return db.trace
}

// Harvest returns the accesses recorded so far and starts a new execution unit.
// Cached code survives across units.
func (db *DB) Harvest() *accesstrace.Trace {
	if db.codeCache != nil {
		if changed, hit, miss := db.codeCache.Stats(); changed {
			logger.Debug("code cache stats", "hit", hit, "miss", miss, "len", db.codeCache.Len())
		}
	}
	return db.trace.Harvest()
}
