package pipeline

import "errors"

// ErrIncompleteDetails is returned when a detail page carries none of the
// founded, team size and location labels and lenient mode is off.
var ErrIncompleteDetails = errors.New("detail page has no founded, team size or location")
