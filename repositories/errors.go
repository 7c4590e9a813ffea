package repositories

import "errors"

// ErrNotFound reports that no row matched a lookup. Store faults are returned
// as-is; handlers distinguish the two to pick between 404 and 500.
var ErrNotFound = errors.New("not found")

// ErrNoPending reports that the OTP ledger holds no live entry for an email,
// either because none was issued or because it expired.
var ErrNoPending = errors.New("no pending otp")
