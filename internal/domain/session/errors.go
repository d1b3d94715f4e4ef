package session

import "errors"

var (
	ErrNoSessionsForMonth = errors.New("no work sessions for month")
)
