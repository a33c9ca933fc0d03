package main

import "github.com/linkhub-io/linkhub/app/cli"

func main() {
	cli.Execute()
}
