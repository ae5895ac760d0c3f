package main

import "kvcrud/cmd"

func main() {
	cmd.Execute()
}
