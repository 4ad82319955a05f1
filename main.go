package main

import "github.com/zjrosen/voxlink/cmd"

func main() {
	cmd.Execute()
}
