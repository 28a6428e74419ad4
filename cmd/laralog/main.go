package main

import (
	"github.com/laralog/laralog/internal/cli"
)

func main() {
	cli.Execute()
}
