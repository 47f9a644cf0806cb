package main

import (
	_ "embed"

	"github.com/notehub/note-hub-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
