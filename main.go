package main

import "github.com/MyelinBots/knightrun-go/cmd"

func main() {
	cmd.Execute()
}
