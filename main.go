package main

import "github.com/gaurav-prasanna/legispipe/cmd"

func main() {
	cmd.Execute()
}
