package main

import "github.com/tanq16/bingwall/cmd"

func main() {
	cmd.Execute()
}
