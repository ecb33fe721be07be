package main

import "go.minekube.com/tiny/pkg/cmd/tiny"

func main() {
	tiny.Execute()
}
