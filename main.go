package main

import "github.com/sadopc/mindease/cmd"

func main() {
	cmd.Execute()
}
