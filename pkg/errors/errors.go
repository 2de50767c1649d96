package errors

import "errors"

// ErrSwapConflict is returned by the ownership pair-swap when one of the two
// books disappears before the transaction commits. The swap is all-or-nothing:
// neither owner field changes when this is returned.
var ErrSwapConflict = errors.New("book exchanged or removed by another operation, refresh and retry")
