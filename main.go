package main

import "github.com/rvasek/mailbrief/internal/cli"

func main() {
	cli.Execute()
}
