package main

import (
	"context"
	"fmt"
	"os"

	"trivia-quiz/internal/cli"
)

func main() {
	cmd := cli.NewCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
