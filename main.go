package main

import (
	"github.com/lushmo/hairbloom/cmd"
)

func main() {
	cmd.Start()
}
