package main

import "github.com/streetbotapp/streetbot/cmd/streetbot/cli"

func main() {
	cli.Execute()
}
