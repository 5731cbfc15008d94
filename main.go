package main

import "autocritique/cmd"

func main() {
	cmd.Execute()
}
