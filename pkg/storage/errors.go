package storage

import "errors"

// ErrInsufficientFunds is returned when a wallet has an insufficient balance for a reservation.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrReservedUnderflow is returned when a release or transfer exceeds what a wallet holds in reserve.
// The engine only releases what it reserved, so this indicates a broken escrow invariant.
var ErrReservedUnderflow = errors.New("reserved balance underflow")

// ErrWalletNotFound is returned when an escrow move or lookup names an unknown wallet.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrWalletExists is returned when creating a wallet for a user that already has one.
var ErrWalletExists = errors.New("wallet already exists")

// ErrNotFound is returned when a campaign record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a commit guard no longer holds, e.g. a concurrent writer bumped the campaign version.
var ErrConflict = errors.New("write conflict")

// ErrActiveSetFull is returned when a commit would grow the active set past its capacity.
var ErrActiveSetFull = errors.New("active set is full")
