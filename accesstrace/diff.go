// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace

// Diff returns the elements of t that are absent from other.
// An account is listed when the account itself or any of its slots is missing
// from other; in the latter case only the missing slots are listed under it.
func (t *Trace) Diff(other *Trace) *Trace {
	d := New()
	for addr, slots := range t.accounts {
		otherSlots, ok := other.accounts[addr]
		if !ok {
			d.RecordAccount(addr)
			if slots != nil {
				d.accounts[addr] = slots.Clone()
			}
			continue
		}
		if slots == nil || slots.Cardinality() == 0 {
			continue
		}
		missing := slots
		if otherSlots != nil {
			missing = slots.Difference(otherSlots)
		}
		if missing.Cardinality() > 0 {
			d.RecordAccount(addr)
			d.accounts[addr] = missing.Clone()
		}
	}
	if t.codes != nil {
		if other.codes != nil {
			d.codes = t.codes.Difference(other.codes)
			d.blockHashes = t.blockHashes.Difference(other.blockHashes)
		} else {
			d.codes = t.codes.Clone()
			d.blockHashes = t.blockHashes.Clone()
		}
	}
	return d
}
