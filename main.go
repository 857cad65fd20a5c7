package main

import (
	"github.com/mtth/igloo/cmd"
)

func main() {
	cmd.Execute()
}
