package repository

import "strconv"

// itoa keeps dynamically built placeholder lists readable.
func itoa(n int) string {
	return strconv.Itoa(n)
}
