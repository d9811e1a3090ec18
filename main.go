package main

import "github.com/cmmoran/mimicgen/cmd"

func main() {
	cmd.Execute()
}
