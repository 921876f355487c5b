package main

import "github.com/oslab-sim/ossim/cmd/ossim/cmd"

func main() {
	cmd.Execute()
}
