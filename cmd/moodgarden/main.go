package main

import (
	"os"

	"github.com/moodgarden/moodgarden/entryservice"
)

func main() {
	if err := entryservice.Run(); err != nil {
		os.Exit(1)
	}
}
