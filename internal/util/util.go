package util

import (
	"runtime/debug"

	"github.com/charmbracelet/log"
)

// Must logs err and exits if it is not nil.
func Must(err error) {
	if err != nil {
		debug.PrintStack()
		log.Fatal(err)
	}
}
