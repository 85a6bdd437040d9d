package main

import "price-manager/cmd"

func main() {
	cmd.Execute()
}
