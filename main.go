package main

import "atp-hospital/cmd"

func main() {
	cmd.Execute()
}
