package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/runesmith/runesmith/internal/cli"
	"github.com/runesmith/runesmith/internal/utils"
)

// main is the entry point for the runesmith command.
func main() {
	if dotenvError := godotenv.Load(); dotenvError != nil && !os.IsNotExist(dotenvError) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", dotenvError)
	}
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
