package main

import (
	"log"

	"github.com/easyjobfind/easyjobfind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
