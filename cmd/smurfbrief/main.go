package main

import (
	"smurfbrief/internal/cli"
)

func main() {
	cli.Execute()
}
