package controller

import "errors"

var errInvalidSnapshot = errors.New("controller: invalid status snapshot length")
