package main

import "manview/cmd"

func main() {
	cmd.Execute()
}
