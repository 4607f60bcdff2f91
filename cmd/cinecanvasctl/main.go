package main

import "cinecanvas/cmd/cinecanvasctl/cmd"

func main() {
	cmd.Execute()
}
