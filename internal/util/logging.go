// Package util holds the helpers shared across pomotrack: passphrase hashing,
// data and config paths, logging and small value conversions.
package util

import "log"

// LogError logs err under context when it is non-nil. It is used for side
// effects that must never interrupt the timer, such as notifications and
// phase-log writes.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}
