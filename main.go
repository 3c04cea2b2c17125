package main

import "github.com/ryosan-470/mf-dashboard/cmd"

func main() {
	cmd.Execute()
}
