package main

import "nathanbeddoewebdev/leasedns/cmd"

func main() {
	cmd.Execute()
}
