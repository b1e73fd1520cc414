// SPDX-License-Identifier: MIT

package angle

import "math"

// tableSize is the number of entries per table: one per byte angle.
const tableSize = 256

// TrigTables holds precomputed cosine and sine values for the 256 byte angles.
// Build it once with NewTrigTables and share it: it is read-only after
// construction and therefore safe for concurrent use.
type TrigTables struct {
	cos [tableSize]float64
	sin [tableSize]float64
}

// NewTrigTables computes both tables. 4KiB of memory, O(256) time.
func NewTrigTables() *TrigTables {
	t := &TrigTables{}
	for i := 0; i < tableSize; i++ {
		r := float64(i) * 2 * math.Pi / tableSize
		t.cos[i] = math.Cos(r)
		t.sin[i] = math.Sin(r)
	}

	return t
}

// Cos returns the tabulated cosine of a byte angle (truncated to its index).
func (t *TrigTables) Cos(a Angle[ByteUnit]) float64 { return t.cos[Byte(a)] }

// Sin returns the tabulated sine of a byte angle (truncated to its index).
func (t *TrigTables) Sin(a Angle[ByteUnit]) float64 { return t.sin[Byte(a)] }
