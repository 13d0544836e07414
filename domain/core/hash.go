package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// TableHash fingerprints table content. Two runs over the same input
// must produce the same fingerprint, so it doubles as a determinism
// check on run artifacts.
type TableHash Hash

func (h TableHash) String() string { return Hash(h).String() }
func (h TableHash) IsEmpty() bool  { return Hash(h).IsEmpty() }

// ComputeTableHash fingerprints headers and rows. Row and cell lengths
// are folded in so shifted cell boundaries cannot collide.
func ComputeTableHash(headers []string, rows [][]string) TableHash {
	d := sha256.New()
	var n [8]byte

	writeRow := func(row []string) {
		binary.BigEndian.PutUint64(n[:], uint64(len(row)))
		d.Write(n[:])
		for _, cell := range row {
			binary.BigEndian.PutUint64(n[:], uint64(len(cell)))
			d.Write(n[:])
			d.Write([]byte(cell))
		}
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return TableHash(hex.EncodeToString(d.Sum(nil)))
}
