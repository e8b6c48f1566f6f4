package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Sweatstakes"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start drawing scheduler",
			Category:    "Worker",
			Description: `Closes ticket sales and executes drawings when they come due.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "version", Usage: "Migration version, defaults to auto"},
			},
			Category:    "Database",
			Description: `Creates or updates the database schema.`,
		},
	}

	s.app = app
}
