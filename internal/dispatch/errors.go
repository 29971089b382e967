package dispatch

import "errors"

var errUnknownAction = errors.New("unknown action type")
