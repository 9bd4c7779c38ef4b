package main

import (
	"strings"

	"github.com/spf13/cobra"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/auth"
)

func init() {
	UserCommand.AddCommand(&UserAddCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "User management commands",
	Long:  "User management commands",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var UserAddCommand = cobra.Command{
	Use:   "add <email> <password>",
	Short: "Register a user without going through the API",
	Long:  "Register a user without going through the API",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			logger.Fatal("user add wants 2 arguments: email and password")
		}

		email := strings.ToLower(strings.TrimSpace(args[0]))
		password := args[1]

		if !auth.IsValidPassword(password) {
			logger.Fatal("password must be at least 8 characters long, with one uppercase letter and one number")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			logger.Fatal("could not hash password:", err)
		}

		store := openStore(readConfiguration())
		defer store.Close()

		user := papertrack.User{Email: email, Password: hash}
		if err := store.CreateUser(&user); err != nil {
			logger.Fatal("could not create user:", err)
		}

		logger.Printf("user %s created with id %d", user.Email, user.ID)
	},
}
