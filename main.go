package main

import "github.com/JhonW67/ProjectHub/cmd"

func main() {
	cmd.Execute()
}
