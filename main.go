package main

import "shopdesk/cmd"

func main() {
	cmd.Execute()
}
