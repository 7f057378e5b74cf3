package database

import "time"

// toNullableArg converts a pointer to an interface{} suitable for SQL args.
// Returns nil if pointer is nil, otherwise returns the dereferenced value.
func toNullableArg[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// utcArg normalises timestamps so stored text sorts chronologically.
func utcArg(t time.Time) time.Time {
	return t.UTC()
}

func nullableTimeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
