package main

import (
	"os"

	"github.com/Jaymon/DateParser/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
