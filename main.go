package main

import (
	"treko/cmd"
)

// @title treko backend API
// @version 1.0
// @description Time tracking ingestion and statistics backend.
// @BasePath /api/v1
func main() {
	cmd.Execute()
}
