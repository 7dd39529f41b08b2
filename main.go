package main

import (
	_ "focolog/custom"

	"focolog/cmd"
	"focolog/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
