package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/campuskit/linkboard/core/report"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db           *sql.DB
	settingsRepo report.SettingsRepository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	fmt.Println("  setreportemail -course ID [-email EMAIL] - set or clear a course's broken-link notification address")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	setEmailCmd := flag.NewFlagSet("setreportemail", flag.ExitOnError)
	setEmailCourse := setEmailCmd.Int("course", 0, "The course ID.")
	setEmailAddr := setEmailCmd.String("email", "", "The notification address. Leave empty to disable notifications.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "setreportemail":
		if err := setEmailCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setEmailCourse == 0 {
			setEmailCmd.Usage()
			return errHelp
		}
		return cli.setReportEmail(*setEmailCourse, *setEmailAddr)
	default:
		cli.printUsage()
		return errHelp
	}
}
