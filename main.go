package main

import "github.com/bundlebench/bundlebench/cmd"

func main() {
	cmd.Execute()
}
