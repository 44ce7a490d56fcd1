// themectl manages the terminal appearance preference: system, light or dark
package main

import (
	"os"

	"github.com/iiroan/themectl/cmd/themectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
