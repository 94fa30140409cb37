package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"hextable/client"
	"hextable/common/logging"
	"hextable/common/parser"
	"hextable/common/termcolor"
	"hextable/server"

	"github.com/charmbracelet/log"
)

func main() {
	var (
		configFile string
		sendFile   string
		timeout    time.Duration
	)
	flag.StringVar(&configFile, "c", "", "Tap configuration file")
	flag.StringVar(&sendFile, "send", "", "Send this file to a running tap instead of listening")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for -send")
	flag.Parse()

	if configFile == "" {
		fmt.Println("Usage: hextap -c <config_file> [-send <payload_file>]")
		os.Exit(1)
	}

	config, err := parser.ParseTapConfig(configFile)
	if err != nil {
		log.Errorf("Failed to parse config file: %v", err)
		os.Exit(1)
	}

	if err := parser.ValidateTapConfig(config); err != nil {
		log.Errorf("Invalid tap config: %v", err)
		os.Exit(1)
	}
	if err := logging.Setup(config.LogConfig); err != nil {
		log.Errorf("Failed to set up logging: %v", err)
		os.Exit(1)
	}

	log.Info("Parsed tap config")

	if sendFile != "" {
		payload, err := os.ReadFile(sendFile)
		if err != nil {
			log.Errorf("Failed to read payload: %v", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		reply, err := client.Send(ctx, config, payload)
		if err != nil {
			log.Errorf("Send failed: %v", err)
			os.Exit(1)
		}
		log.Infof("Sent %d bytes, %d echoed", len(payload), len(reply))
		return
	}

	// Run the tap service
	err = server.Run(config, server.Options{
		Out:     os.Stdout,
		Colored: termcolor.Enabled(config.RenderConfig.Color, os.Stdout),
	})
	if err != nil {
		log.Errorf("Tap failed: %v", err)
		os.Exit(1)
	}
}
