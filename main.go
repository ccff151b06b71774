package main

import "trustlens/cmd"

func main() {
	cmd.Execute()
}
