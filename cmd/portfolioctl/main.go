// Command portfolioctl manages a portfolio deployment from the shell: it
// creates admin accounts and uploads the résumé without the dashboard.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
