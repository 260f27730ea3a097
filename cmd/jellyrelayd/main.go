package main

import (
	"flag"
	"fmt"
	"os"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discovered)")
	writeConfig := flag.Bool("write-config", false, "Write a default config file and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("jellyrelayd %s\n", version)
		os.Exit(0)
	}

	if err := runServer(*configPath, *writeConfig); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
