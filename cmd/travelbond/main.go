package main

import "github.com/o6b7/travelbond/internal/cli/cmd"

func main() {
	cmd.Execute()
}
