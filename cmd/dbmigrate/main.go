package main

import "github.com/andrescamacho/dbmigrate/internal/adapters/cli"

func main() {
	cli.Execute()
}
