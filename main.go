package main

import "github.com/o1-spec/techservices-portal/cmd"

func main() {
	cmd.Execute()
}
