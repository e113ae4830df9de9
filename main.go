package main

import "github.com/theopenlane/rapidrecon/cmd"

func main() {
	cmd.Execute()
}
