package main

import "github.com/deepnoodle-ai/skillset/cmd/skillset/cli"

func main() {
	cli.Execute()
}
