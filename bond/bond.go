// Package bond defines the identity primitives shared by every component of
// the revenue-bond library: participant addresses and series identifiers.
package bond

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Address identifies a participant (issuer, holder, payer, fee receiver)
// by its P2PKH public key hash.
type Address [20]byte

// ZeroAddress is the empty address. No participant may use it.
var ZeroAddress Address

// AddressFromPublicKey derives the address for a compressed public key.
// Uses the canonical Hash160 = RIPEMD160(SHA256(pubkey)).
func AddressFromPublicKey(pub *ec.PublicKey) (Address, error) {
	if pub == nil {
		return Address{}, ErrNilPublicKey
	}
	var addr Address
	copy(addr[:], bsvhash.Hash160(pub.Compressed()))
	return addr, nil
}

// ParseAddress decodes a 40-character hex string into an Address.
func ParseAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != 20 {
		return Address{}, fmt.Errorf("%w: expected 20 bytes, got %d", ErrInvalidAddress, len(raw))
	}
	var addr Address
	copy(addr[:], raw)
	return addr, nil
}

// IsZero returns true if the address is the zero address.
func (a Address) IsZero() bool { return a == ZeroAddress }

// String returns the hex encoding of the address.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// SeriesID uniquely identifies an issued series for its whole lifetime.
type SeriesID [32]byte

// NewSeriesID derives a series identifier from the issuer, the creation
// time, and a per-issuer nonce. The derivation is deterministic so that a
// creation replayed against a store yields the same identity.
func NewSeriesID(issuer Address, createdAt time.Time, nonce uint64) SeriesID {
	buf := make([]byte, 20+8+8)
	copy(buf[0:20], issuer[:])
	binary.BigEndian.PutUint64(buf[20:28], uint64(createdAt.Unix()))
	binary.BigEndian.PutUint64(buf[28:36], nonce)
	return SeriesID(sha256.Sum256(buf))
}

// ParseSeriesID decodes a 64-character hex string into a SeriesID.
func ParseSeriesID(s string) (SeriesID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return SeriesID{}, fmt.Errorf("%w: %v", ErrInvalidSeriesID, err)
	}
	if len(raw) != 32 {
		return SeriesID{}, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidSeriesID, len(raw))
	}
	var id SeriesID
	copy(id[:], raw)
	return id, nil
}

// String returns the hex encoding of the series ID.
func (id SeriesID) String() string { return hex.EncodeToString(id[:]) }
