package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], defaultConfig, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
