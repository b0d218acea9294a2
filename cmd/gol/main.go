package main

import "gamelife/cmd/gol/root"

func main() {
	root.Execute()
}
