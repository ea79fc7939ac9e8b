// Command timelinectl inspects the time grid of a resource timeline and
// converts event datasets from and to iCalendar.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
