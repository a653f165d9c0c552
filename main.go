package main

import "github.com/alexiusacademia/gobfd/cmd"

func main() {
	cmd.Execute()
}
