package planet

import "errors"

var ErrDesignNotFound = errors.New("design not found")
