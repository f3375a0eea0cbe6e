// Package main — habitctl, локальный трекер привычек.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/cli"
)

func main() {
	// stdout занят выводом команд
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(log.WarnLevel)

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
