package main

import "hotel-inventory/cmd"

func main() {
	cmd.Execute()
}
