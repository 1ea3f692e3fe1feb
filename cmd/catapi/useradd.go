package main

import (
	"cat_api/internal/api"        // Registration rules
	"cat_api/internal/config"     // Application configuration
	"cat_api/internal/db"         // Database connection
	"cat_api/internal/domain"     // Domain models
	"cat_api/internal/server"     // Logger setup
	"cat_api/internal/store"      // User store
	"cat_api/internal/utils"      // Password hashing
	"cat_api/internal/validation" // Rule messages
	"fmt"                         // Output
	"strings"                     // Input normalization

	"github.com/gin-gonic/gin/binding" // Shared validator
	"github.com/sirupsen/logrus"       // Logging library
	"github.com/spf13/cobra"           // CLI commands
)

// Flags for useradd
var (
	userAddName     string
	userAddEmail    string
	userAddPassword string
	userAddRole     string
)

// userAddCmd inserts a user directly, the only way to create admins
var userAddCmd = &cobra.Command{
	Use:     "useradd",
	Short:   "Create a user with any role",
	Example: `  catapi useradd --name root --email root@example.com --password changeme --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if userAddRole != domain.RoleUser && userAddRole != domain.RoleAdmin {
			return fmt.Errorf("role must be %q or %q", domain.RoleUser, domain.RoleAdmin)
		}
		req := api.UserRequest{
			UserName: strings.TrimSpace(userAddName),
			Email:    strings.ToLower(strings.TrimSpace(userAddEmail)),
			Password: userAddPassword,
		}
		// Same rules as registration over HTTP
		if err := binding.Validator.ValidateStruct(req); err != nil {
			return validation.Translate(err)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := server.SetupLogger(cfg); err != nil {
			return err
		}
		gdb, err := db.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return err
		}
		msg, err := store.NewUserStore(gdb).CreateUser(cmd.Context(), domain.NewUser{
			UserName:     req.UserName,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         userAddRole,
		})
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"email": req.Email,   // New account
			"role":  userAddRole, // Granted role
		}).Info(msg.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userAddCmd)
	userAddCmd.Flags().StringVar(&userAddName, "name", "", "display name (min 3 characters)")
	userAddCmd.Flags().StringVar(&userAddEmail, "email", "", "login email")
	userAddCmd.Flags().StringVar(&userAddPassword, "password", "", "plain password (min 5 characters)")
	userAddCmd.Flags().StringVar(&userAddRole, "role", domain.RoleUser, "user or admin")
	_ = userAddCmd.MarkFlagRequired("name")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")
}
