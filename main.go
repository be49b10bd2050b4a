package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/spendscope/spendscope/cmd/analyze"
	"github.com/spendscope/spendscope/cmd/categorize"
	"github.com/spendscope/spendscope/cmd/recurring"
	"github.com/spendscope/spendscope/cmd/report"
	"github.com/spendscope/spendscope/cmd/root"
)

func init() {
	// Load environment variables silently first, then configure the global
	// log level before any command logging happens.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	logrus.SetLevel(logLevelFromEnv())

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(recurring.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

func logLevelFromEnv() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
