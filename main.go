package main

import "github.com/theirongolddev/orburn/cmd"

func main() {
	cmd.Execute()
}
