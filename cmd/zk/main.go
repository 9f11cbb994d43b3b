// Package main is the entry point for the zk CLI tool.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/zkcli/zk/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
