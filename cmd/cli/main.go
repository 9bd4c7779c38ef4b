package main

import (
	"os"

	"github.com/BurntSushi/toml"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/database"
)

type Configuration struct {
	Web struct {
		Addr string `toml:"addr"`
	} `toml:"web"`
	Store struct {
		Dir string `toml:"dir"`
	} `toml:"store"`
}

func readConfiguration() Configuration {
	config := Configuration{}
	config.Web.Addr = ":1705"
	config.Store.Dir = "data"

	data, err := os.ReadFile(configFile)
	if err != nil {
		logger.Fatal("could not read configuration file:", err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		logger.Fatal("error unmarshalling configuration:", err)
	}

	return config
}

func openStore(config Configuration) papertrack.Store {
	store, err := database.Open(config.Store.Dir, logger)
	if err != nil {
		logger.Fatal("could not open store:", err)
	}
	return store
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
