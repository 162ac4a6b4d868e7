// Package continuation: sentinel error set.
package continuation

import "errors"

// ErrBadSchedule rejects a smoothing schedule that is empty, carries a
// non-positive or non-finite epsilon, or is not strictly decreasing.
var ErrBadSchedule = errors.New("continuation: invalid epsilon schedule")
