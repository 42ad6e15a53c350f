package main

import "github.com/Alijeyrad/contact_relay/cmd"

func main() {
	cmd.Execute()
}
