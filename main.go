package main

import "github.com/Tiliavir/trivial-time-tracker/cmd"

func main() {
	cmd.Execute()
}
