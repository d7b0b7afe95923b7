package main

import cmd "github.com/kerbaras/rmwiki/cmd/rmwiki"

func main() {
	cmd.Execute()
}
