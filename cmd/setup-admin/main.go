// Command setup-admin grants the admin role to an existing or new account.
package main

import (
	"fmt"
	"os"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/auth"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "setup-admin",
		Usage: "manage administrator accounts of the recruiting portal",
		Before: func(*cli.Context) error {
			config.Init()
			database.Init()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "grant",
				Usage:     "give the account with EMAIL the admin role, creating it if needed",
				ArgsUsage: "EMAIL",
				Action:    grant,
			},
			{
				Name:   "list",
				Usage:  "list accounts and their roles",
				Action: list,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func grant(c *cli.Context) error {
	email := c.Args().First()
	if email == "" {
		return cli.Exit("EMAIL is required", 2)
	}
	db := database.DB.WithContext(c.Context)
	identity, err := auth.FindOrCreateIdentity(db, email)
	if err != nil {
		return err
	}
	profile, err := auth.SetRole(db, identity.ID, model.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s (profile %s)\n", identity.Email, profile.Role, profile.ID)
	return nil
}

func list(c *cli.Context) error {
	var profiles []model.Profile
	if err := database.DB.WithContext(c.Context).Preload("Identity").Order("created_at").Find(&profiles).Error; err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("no accounts yet; sign in once or run grant")
		return nil
	}
	for i := range profiles {
		fmt.Printf("%-40s %-10s %s\n", profiles[i].Email(), profiles[i].Role, profiles[i].ID)
	}
	return nil
}
