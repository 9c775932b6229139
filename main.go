package main

import "github.com/KaramelBytes/courtside/cmd"

func main() {
	cmd.Execute()
}
