package main

import "github.com/sandeepkv93/taskpad/internal/cli"

func main() {
	cli.Execute()
}
