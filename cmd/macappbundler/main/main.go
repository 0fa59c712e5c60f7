package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/macappbundler/cmd/macappbundler"
	"github.com/arthur-debert/macappbundler/pkg/output/styles"
)

func main() {
	rootCmd := macappbundler.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
