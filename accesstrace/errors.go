// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/exectrace/thor"
)

// ErrNonCanonical is returned when decoding an RLP trace whose lists are not
// strictly ascending.
var ErrNonCanonical = errors.New("accesstrace: non-canonical encoding")

// InvariantError is the panic value raised when storage is recorded for an
// account that was not recorded first.
type InvariantError struct {
	Account thor.Address
	Key     thor.Bytes32
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("accesstrace: storage %v recorded for unregistered account %v", e.Key, e.Account)
}
