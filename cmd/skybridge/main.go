package main

import (
	"flag"
	"fmt"

	"github.com/codebrew-airways/skybridge/internal/base"
	"github.com/codebrew-airways/skybridge/internal/client"
	"github.com/codebrew-airways/skybridge/internal/http_server"
	"github.com/codebrew-airways/skybridge/internal/interfaces"
	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
)

func recoverFromError() {
	if r := recover(); r != nil {
		fmt.Printf("It looks like there are some serious errors, the details are as follows: %v", r)
	}
}

func main() {
	flag.Parse()

	defer recoverFromError()

	logger := base.NewLogger()
	logger.Init(*global.DebugMode)

	logger.Info("Application initializing...")

	cleaner := base.NewCleaner(logger)
	cleaner.Init()
	defer cleaner.Clean()

	configManager := base.NewManager(logger)
	config := configManager.Config()

	apiClient := client.NewAviationClient(config.Backend)

	applicationContent := interfaces.NewApplicationContent(configManager, cleaner, logger, apiClient)

	http_server.StartHttpServer(applicationContent)
}
