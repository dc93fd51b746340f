package main

import "github.com/handl-dev/handl/internal/cli"

func main() {
	cli.Execute()
}
