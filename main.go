package main

import "github.com/theirongolddev/spotbill/cmd"

func main() {
	cmd.Execute()
}
