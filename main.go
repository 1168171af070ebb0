package main

import "github.com/bmatsuo/rkt/cmd"

func main() {
	cmd.Execute()
}
