package main

import "github.com/saltyorg/chartpedia/cmd"

func main() {
	cmd.Execute()
}
