package main

import "github.com/hmapp/maps-key-bridge/cmd"

func main() {
	cmd.Execute()
}
