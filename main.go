package main

import (
	"log"

	"github.com/bananai/brokerage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
