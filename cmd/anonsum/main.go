package main

import "github.com/anonsum/anonsum/internal/cli"

func main() {
	cli.Execute()
}
