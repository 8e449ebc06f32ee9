// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accesstrace records which state elements one execution unit touched.
//
// A Trace collects accounts, per-account storage slots, code hashes and the
// numbers of blocks whose hash was read. The executor records each access
// inline and calls Harvest once the unit is done:
//
//	tr := accesstrace.New()
//	for _, tx := range txs {
//	    exec(tx, tr)         // RecordAccount, RecordStorage, ...
//	    consume(tr.Harvest()) // tr is empty again
//	}
//
// Storage may only be recorded for an account recorded earlier in the same
// unit. A violation is an executor bug and panics with *InvariantError.
//
// A Trace is owned by a single goroutine. Parallel executors keep one per unit.
package accesstrace
