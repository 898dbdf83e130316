package main

import "github.com/kamusis/verbmotion/cmd"

func main() {
	cmd.Execute()
}
