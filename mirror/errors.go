package mirror

import "errors"

var errNotWritable = errors.New("mirror: controls channel does not support writes")
