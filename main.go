package main

import "github.com/sanatan-learnings/sanatan-verse-sdk/cmd"

func main() {
	cmd.Execute()
}
