package main

import (
	"log"
	osalias "os"
)

func helper() {
	osalias.Exit(2)
}

func main() {
	helper()
	log.Fatalf("boom: %d", 1) // want `вызов log.Fatalf в функции main запрещён`
	osalias.Exit(1)           // want `вызов os.Exit в функции main запрещён`
}
