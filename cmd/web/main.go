package main

import "jobforge_backend/internal/app"

func main() {
	app.Run()
}
