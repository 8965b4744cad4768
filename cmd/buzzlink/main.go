package main

import "github.com/bolt162/buzzlink-app/internal/cli"

func main() {
	cli.Execute()
}
