package main

import "github.com/user/clipforge-cli/cmd"

func main() {
	cmd.Execute()
}
