package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
