package main

import "github.com/momeni/dealer-web/cmd/dlrweb/command"

func main() {
	command.Execute()
}
