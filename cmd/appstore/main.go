package main

import "github.com/vietddude/appstore/internal/cli"

func main() {
	cli.Execute()
}
