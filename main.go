package main

import "github.com/frahmantamala/shift-tracker/cmd"

func main() {
	cmd.Execute()
}
