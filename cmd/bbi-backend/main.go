package main

import (
	"os"

	"github.com/muhtegaralfikri/bbi-backend/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
