package main

import (
	"log"

	"github.com/dnlam/staff-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
