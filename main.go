package main

import "github.com/docuvault/docuvault/cmd"

func main() {
	cmd.Execute()
}
