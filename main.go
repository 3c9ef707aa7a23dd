package main

import "github.com/alphagrips/academy-backend/cmd"

func main() {
	cmd.Execute()
}
