package main

import "mathquest/cmd/mq/root"

func main() {
	root.Execute()
}
