package main

import "github.com/notargets/rendezvous/cmd"

func main() {
	cmd.Execute()
}
