package main

import (
	"log"
	"os"

	"github.com/viant/mcpbridge/bridge"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
