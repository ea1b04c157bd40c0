package main

import "github.com/papapumpkin/conductor/cmd"

func main() {
	cmd.Execute()
}
