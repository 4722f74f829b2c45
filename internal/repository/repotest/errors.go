package repotest

import "errors"

var errDuplicate = errors.New("repotest: duplicate key")
