package main

import (
	"context"
	"os"

	"repo2file/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
