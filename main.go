package main

import "github.com/Bitlatte/resonant/cmd"

func main() {
	cmd.Execute()
}
