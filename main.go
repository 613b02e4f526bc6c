package main

import "github.com/mikeintech/budgetterrr/cmd"

func main() {
	cmd.Execute()
}
