package main

import "github.com/chukul/awsctx/cmd"

func main() {
	cmd.Execute()
}
