package main

import (
	_ "github.com/eleven-am/aeye/docs"
	"github.com/eleven-am/aeye/internal/bootstrap"
)

// @title Aeye Assist API
// @version 1.0.0
// @description Perception-to-speech assist core with interaction recording and memory

// @host localhost:8080
// @BasePath /api

func main() {
	bootstrap.Run()
}
