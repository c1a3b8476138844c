package main

import "feature-diff/cmd"

func main() {
	cmd.Execute()
}
