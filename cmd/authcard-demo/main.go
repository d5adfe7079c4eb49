package main

import "github.com/nfrund/authcard/cmd/authcard-demo/cmd"

func main() {
	cmd.Execute()
}
