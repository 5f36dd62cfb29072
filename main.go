package main

import (
	"os"

	"github.com/bontastic/printerctl/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
