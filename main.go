package main

import "github.com/vybdev/modelcat/cmd"

func main() {
	cmd.Execute()
}
