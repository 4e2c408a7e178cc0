package main

import "github.com/mvwi/icheckout/internal/cmd"

func main() {
	cmd.Execute()
}
