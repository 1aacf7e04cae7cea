// Command dataexport writes one data export to a file or stdout without going
// through the HTTP server. The set-password subcommand provisions the
// administrator accounts that log in to the HTTP exports.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"confdata/config"
	"confdata/internal/adapters/auth"
	"confdata/internal/adapters/database"
	"confdata/internal/domain"
	"confdata/internal/repository/postgres"
	"confdata/internal/services"
)

type options struct {
	report string
	out    string
	site   string
	list   bool
}

var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := pflag.NewFlagSet("dataexport", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: dataexport --report <name> [--out file|-] [--site domain]")
		fmt.Fprintln(stderr, "       dataexport --list")
		fmt.Fprintln(stderr, "       dataexport set-password --email <address> [--name <name>] [--superuser] < password")
		fs.PrintDefaults()
	}
	opts := &options{}
	fs.StringVarP(&opts.report, "report", "r", "", "report to write (see --list)")
	fs.StringVarP(&opts.out, "out", "o", "", "output file; defaults to the report's filename, - for stdout")
	fs.StringVar(&opts.site, "site", "", "site domain for review links (overrides SITE_DOMAIN)")
	fs.BoolVar(&opts.list, "list", false, "list available reports and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !opts.list && opts.report == "" {
		fs.Usage()
		return nil, fmt.Errorf("%w: --report is required", errUsage)
	}
	return opts, nil
}

func listReports(w io.Writer) {
	for _, r := range services.DownloadableReports() {
		fmt.Fprintf(w, "%-20s %-24s %s\n", r.Name, r.Filename, r.Title)
	}
}

// outputPath resolves where a report is written; "" means stdout.
func outputPath(opts *options, report domain.Report) string {
	switch opts.out {
	case "-":
		return ""
	case "":
		return report.Filename
	}
	return opts.out
}

func findReport(name string) (domain.Report, bool) {
	for _, r := range services.DownloadableReports() {
		if r.Name == name {
			return r, true
		}
	}
	return domain.Report{}, false
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == setPasswordCommand {
		return runSetPassword(ctx, args[1:], stdin, stdout, stderr)
	}
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.list {
		listReports(stdout)
		return nil
	}
	report, ok := findReport(opts.report)
	if !ok {
		return fmt.Errorf("%w: unknown report %q", domain.ErrInvalidInput, opts.report)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	site := opts.site
	if site == "" {
		site = cfg.SiteDomain
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	svc := services.NewExportService(
		postgres.NewProposalRepository(db),
		postgres.NewReviewResultRepository(db),
		postgres.NewSpeakerRepository(db),
		postgres.NewSponsorRepository(db),
		postgres.NewScheduleRepository(db),
		cfg.MediaURL, cfg.SponsorHashTemplate, cfg.RequestTimeout,
	)

	path := outputPath(opts, report)
	if path == "" {
		return services.WriteReport(ctx, svc, report.Name, site, stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := services.WriteReport(ctx, svc, report.Name, site, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	logger.Info("export written", "report", report.Name, "path", path)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("dataexport failed", "err", err)
		os.Exit(1)
	}
}

const setPasswordCommand = "set-password"

type accountOptions struct {
	email     string
	name      string
	superuser bool
}

func parseAccountFlags(args []string, stderr io.Writer) (*accountOptions, error) {
	fs := pflag.NewFlagSet(setPasswordCommand, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: dataexport set-password --email <address> [--name <name>] [--superuser] < password")
		fs.PrintDefaults()
	}
	opts := &accountOptions{}
	fs.StringVar(&opts.email, "email", "", "account email, created when it does not exist")
	fs.StringVar(&opts.name, "name", "", "display name; empty keeps the current name")
	fs.BoolVar(&opts.superuser, "superuser", false, "grant the superuser flag")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.email == "" {
		fs.Usage()
		return nil, fmt.Errorf("%w: --email is required", errUsage)
	}
	return opts, nil
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("%w: password is read from stdin", errUsage)
	}
	return password, nil
}

func runSetPassword(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseAccountFlags(args, stderr)
	if err != nil {
		return err
	}
	password, err := readPassword(stdin)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	accounts := services.NewAccountService(postgres.NewUserRepository(db), auth.NewBcryptHasher(bcrypt.DefaultCost))
	user, err := accounts.SetPassword(ctx, opts.email, opts.name, password, opts.superuser)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "password set for %s (%s)\n", user.Email, user.ID)
	return nil
}
