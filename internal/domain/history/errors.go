package history

import "errors"

var (
	ErrHistoryEntryNotFound = errors.New("assignment history entry not found")
)
