package main

import (
	"github.com/theideaforge/forge/internal/server"
	"github.com/theideaforge/forge/internal/util"
	"github.com/theideaforge/forge/pkg/logger"
	"github.com/theideaforge/forge/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
