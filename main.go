package main

import (
	"github.com/avholst/htty/internal/runner"
)

func main() {
	runner.Run()
}
