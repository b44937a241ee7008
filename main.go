package main

import "github.com/wmhints/wmctl/cmd"

func main() {
	cmd.Execute()
}
