package main

import "github.com/matthewelijahlogan/mirror/cmd"

func main() {
	cmd.Execute()
}
