package main

import (
	"log"
	"os"

	"bookcatalog/internal/app"
)

func main() {
	application, err := app.New(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
