package main

import "github.com/pdrmenezes/basic-todo/cmd"

func main() {
	cmd.Execute()
}
