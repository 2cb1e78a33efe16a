package main

import "shelfdex/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
