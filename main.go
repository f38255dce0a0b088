package main

import (
	"os"

	"github.com/abhisek/quizprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
