package main

import "kairo_backend/internal/app"

func main() {
	app.Run()
}
