package main

import "contextmap/internal/cli"

func main() {
	cli.Execute()
}
