package main

import "github.com/cuiweiyuan/explorer/cmd"

func main() {
	cmd.Execute()
}
