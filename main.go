package main

import "github.com/theirongolddev/backpack/cmd"

func main() {
	cmd.Execute()
}
