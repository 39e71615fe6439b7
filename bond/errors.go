package bond

import "errors"

var (
	// ErrNilPublicKey indicates a nil public key was supplied.
	ErrNilPublicKey = errors.New("bond: nil public key")

	// ErrInvalidAddress indicates the address encoding is malformed.
	ErrInvalidAddress = errors.New("bond: invalid address")

	// ErrInvalidSeriesID indicates the series ID encoding is malformed.
	ErrInvalidSeriesID = errors.New("bond: invalid series id")
)
