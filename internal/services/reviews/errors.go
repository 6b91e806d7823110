package reviews

import "errors"

var ErrAlreadyReviewed = errors.New("movie already reviewed")
