// Copyright © 2019 One Concern

// Package cmd implements the checkpoint command line tool.
//
// The snapshot store itself lives in a pipeline session's process; this tool
// covers the out-of-process surface: inspecting a staging namespace and
// erasing it for compliance.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneconcern/checkpoint/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Checkpoint manages versioned pipeline dataset snapshots",
	Long: `Checkpoint manages the durable side of a pipeline's versioned snapshot store.

A running pipeline session checkpoints its working dataset after every
transformation step. Snapshots evicted from the session's in-memory cache
persist in a staging directory; this tool lists those durable artifacts and
erases them when a session's data must be destroyed.`,
}

var (
	storeConfig config.Store

	// used to patch over calls to os.Exit() during test
	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf

	// infoLogger wraps informative messages to os.Stdout without cluttering expected output in tests
	infoLogger = log.New(os.Stdout, "", 0)
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cf := os.Getenv("CHECKPOINT_CONFIG"); cf != "" {
		viper.SetConfigFile(cf)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.checkpoint")
		viper.AddConfigPath("/etc/checkpoint")
		viper.SetConfigName("checkpoint")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	storeConfig, err = config.FromViper(viper.GetViper())
	if err != nil {
		logFatalln(err)
	}
}

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}
