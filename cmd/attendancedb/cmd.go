package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"student_attendance/attendancedb"
	"student_attendance/collaborator"
	"student_attendance/config"
	"student_attendance/db"
	"student_attendance/logger"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = term.IsTerminal   // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func (cli *commandLine) printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(cli.stderr, "Usage: attendancedb [flags] <verb> [args...]")
	fmt.Fprintln(cli.stderr, "  signup <username> [password]      - create an account (password prompted when omitted)")
	fmt.Fprintln(cli.stderr, "  login <username> <password>       - check credentials")
	fmt.Fprintln(cli.stderr, "  addStudent <name> <rollNo> <dept> - register a student")
	fmt.Fprintln(cli.stderr, "  markAttendance <rollNo> <present|absent> [YYYY-MM-DD]")
	fmt.Fprintln(cli.stderr, "  listStudents")
	fmt.Fprintln(cli.stderr, "  listAttendance [YYYY-MM-DD]")
	fs.PrintDefaults()
}

// run answers one verb and reports whether the answer carries the verb's success token.
func (cli *commandLine) run(args []string) (bool, error) {
	fs := flag.NewFlagSet("attendancedb", flag.ContinueOnError)
	fs.SetOutput(cli.stderr)
	driver := fs.String("driver", cli.cfg.Store.Driver, "store driver: postgres, sqlite3 or bolt")
	dsn := fs.String("dsn", "", "connection string (postgres) or file path (sqlite3, bolt); overrides DB_* settings")

	// flags stop at the verb, everything after it is positional
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(cli.stdout, collaborator.TokenError)
		return false, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(cli.stdout, collaborator.TokenNoOperation)
		cli.printUsage(fs)
		return false, errHelp
	}
	verb, verbArgs := rest[0], rest[1:]

	if verb == collaborator.VerbSignup && len(verbArgs) == 1 && isTerminalFunc(int(os.Stdin.Fd())) {
		fmt.Fprint(cli.stderr, "Enter password:")
		pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
		fmt.Fprintln(cli.stderr)
		if err != nil {
			fmt.Fprintln(cli.stdout, collaborator.TokenError)
			return false, err
		}
		verbArgs = append(verbArgs, string(pwd))
	}

	store, err := openStore(cli.cfg.Store, *driver, *dsn)
	if err != nil {
		fmt.Fprintln(cli.stdout, collaborator.TokenError)
		return false, err
	}
	defer store.Close()

	ctx := context.Background()
	if err := db.SeedAdmin(ctx, store, cli.cfg.SeedAdminUser, cli.cfg.SeedAdminPassword, attendancedb.HashPassword); err != nil {
		cli.log.Warn("seeding admin user", err)
	}

	out := attendancedb.New(store, cli.log).Run(ctx, verb, verbArgs)
	fmt.Fprintln(cli.stdout, out)
	return collaborator.Succeeded(verb, out), nil
}

func openStore(cfg db.Config, driver, dsn string) (db.Store, error) {
	cfg.Driver = driver
	if dsn == "" {
		return db.Open(cfg)
	}
	switch driver {
	case "postgres", "sqlite3":
		return db.OpenSQL(driver, dsn)
	case "bolt":
		return db.OpenBolt(dsn)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
