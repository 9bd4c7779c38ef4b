package main

import (
	"flag"
	"net/http"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/database"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/gin"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/log"
)

var (
	addr    = ":1705"
	dataDir = "data"
	env     = "dev"
)

func main() {
	flag.StringVar(&addr, "addr", addr, "address to listen on")
	flag.StringVar(&dataDir, "data", dataDir, "directory holding the database files")
	flag.StringVar(&env, "env", env, "environment")
	flag.Parse()

	logger := log.New(env)

	store, err := database.Open(dataDir, logger)
	if err != nil {
		logger.Fatal("could not open store:", err)
	}
	defer store.Close()

	handler := gin.New(store, papertrack.NewArxivClient())

	logger.Print("server started, listening on", addr)
	logger.Fatal(http.ListenAndServe(addr, handler))
}
