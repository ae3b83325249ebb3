package main

import "github.com/lepinkainen/libris/cmd"

// execute is swappable in tests.
var execute = cmd.Execute

func main() {
	execute()
}
