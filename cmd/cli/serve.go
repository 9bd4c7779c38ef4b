package main

import (
	"net/http"

	"github.com/spf13/cobra"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/gin"
)

func init() {
	RootCmd.AddCommand(&ServeCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  "Start the web server",
	Run: func(cmd *cobra.Command, args []string) {
		config := readConfiguration()

		store := openStore(config)
		defer store.Close()

		handler := gin.New(store, papertrack.NewArxivClient())

		logger.Print("server started, listening on", config.Web.Addr)
		logger.Fatal(http.ListenAndServe(config.Web.Addr, handler))
	},
}
