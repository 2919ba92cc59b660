// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cashapp/certifikit/src/config"
	"github.com/cashapp/certifikit/src/internal/helper/posix"
	x509certs "github.com/cashapp/certifikit/src/internal/x509/certs"
	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
	"github.com/cashapp/certifikit/src/internal/x509/output"
	"github.com/cashapp/certifikit/src/logger"
)

// Options holds the command-line flags of cft.
type Options struct {
	Host       string
	Insecure   bool
	Output     string
	Format     string
	OCSP       bool
	CRL        bool
	Verbose    bool
	ConfigFile string
	Keystore   string
	Complete   string
	Redirect   bool
	CTLogs     bool
	All        bool
}

// App runs cft against injectable streams. The zero value is not usable;
// Stdin, Stdout, Stderr and Log must be set.
type App struct {
	Version string
	Log     logger.Logger
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	// HomeDir holds the .cft directory with the known hosts file.
	HomeDir string
	// Fetcher overrides the HTTP fetcher built from the configuration.
	Fetcher x509chain.Fetcher
	// CTLogURL overrides the crt.sh endpoint used by --ctlogs.
	CTLogURL string
	// Resolver overrides the DNS resolver used by --all.
	Resolver x509chain.Resolver

	opts    Options
	cfg     *config.Config
	decoder *x509certs.Decoder
	trust   *output.TrustStore
}

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Execute runs cft with the process arguments and standard streams. The
// returned error has already been reported on stderr; pass it to [ExitCode].
func Execute(ctx context.Context, version string, log logger.Logger) error {
	home, _ := os.UserHomeDir()
	app := &App{
		Version: version,
		Log:     log,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		HomeDir: home,
	}
	return app.Run(ctx, os.Args[1:])
}

// Run parses args and performs the selected action.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.Command()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		a.report(err)
	}
	return err
}

// Command builds the cobra command bound to a.
func (a *App) Command() *cobra.Command {
	a.opts = Options{}

	cmd := &cobra.Command{
		Use:           posix.ExecutableName(os.Args) + " [FILE]",
		Short:         "An ergonomic CLI for understanding certificates",
		Version:       a.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageErrorf(err, "%v", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return a.run(cmd, file)
		},
	}
	cmd.SetIn(a.Stdin)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf(err, "%v", err)
	})

	flags := cmd.Flags()
	flags.StringVar(&a.opts.Host, "host", "", "fetch certificates from an HTTPS handshake with HOST[:PORT]")
	flags.BoolVar(&a.opts.Insecure, "insecure", false, "skip verification of the server certificate")
	flags.StringVarP(&a.opts.Output, "output", "o", "", "write certificates to a file, a directory or - for stdout")
	flags.StringVar(&a.opts.Format, "format", config.FormatText, "output format: text, json, table or tree")
	flags.BoolVar(&a.opts.OCSP, "ocsp", false, "check revocation status with OCSP")
	flags.BoolVar(&a.opts.CRL, "crl", false, "probe CRL distribution points")
	flags.BoolVar(&a.opts.Verbose, "verbose", false, "verbose output")
	flags.StringVar(&a.opts.ConfigFile, "config", "", "configuration file (JSON or YAML)")
	flags.StringVar(&a.opts.Keystore, "keystore", "", "PEM bundle of roots marked as trusted")
	flags.StringVar(&a.opts.Complete, "complete", "", "print completion candidates (host)")
	flags.BoolVar(&a.opts.Redirect, "redirect", false, "follow redirects when requesting the site")
	flags.BoolVar(&a.opts.CTLogs, "ctlogs", false, "show certificates for the host from CT logs")
	flags.BoolVar(&a.opts.All, "all", false, "fetch from every address the host resolves to")

	return cmd
}

func (a *App) run(cmd *cobra.Command, file string) error {
	if err := a.setup(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()

	switch {
	case a.opts.Complete != "":
		return a.complete()
	case a.opts.Host != "":
		return a.queryHost(ctx, a.opts.Host)
	case file != "":
		return a.showFile(ctx, file)
	default:
		return &UsageError{Msg: "No action to run"}
	}
}

// setup loads configuration and applies flags over it.
func (a *App) setup(cmd *cobra.Command) error {
	if a.Log == nil {
		a.Log = logger.NewCLILogger()
	}
	a.Log.SetOutput(a.Stderr)
	if v, ok := a.Log.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(a.opts.Verbose)
	}

	cfg, err := config.Load(a.opts.ConfigFile)
	if err != nil {
		return usageErrorf(err, "%v", err)
	}
	a.cfg = cfg

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = a.opts.Format
	}
	switch cfg.Output.Format {
	case config.FormatText, config.FormatJSON, config.FormatTable, config.FormatTree:
	default:
		return &UsageError{Msg: "Invalid output format: " + cfg.Output.Format}
	}
	if a.opts.Output == "" {
		a.opts.Output = cfg.Output.Dir
	}

	a.decoder = x509certs.New(cfg.Codec())

	if a.Fetcher == nil {
		a.Fetcher = x509chain.NewHTTPFetcher(cfg.HTTPConfig(a.Version), cfg.NewCache(), a.Log)
	}

	roots := a.opts.Keystore
	if roots == "" {
		roots = cfg.Trust.RootsFile
	}
	if roots != "" {
		trust, err := output.LoadTrustStore(roots, a.decoder)
		if err != nil {
			return usageErrorf(err, "Unable to read keystore: %s", roots)
		}
		a.trust = trust
		a.Log.Debugf("loaded %d trusted roots from %s", trust.Len(), roots)
	}
	return nil
}

func (a *App) complete() error {
	if a.opts.Complete != "host" {
		return nil
	}
	hosts, err := knownHosts(a.HomeDir)
	if err != nil {
		return err
	}
	for _, h := range hosts {
		fmt.Fprintln(a.Stdout, h)
	}
	return nil
}

// report prints err the way cft presents failures. With --verbose the
// underlying cause follows.
func (a *App) report(err error) {
	var (
		usage *UsageError
		cert  *CertificateError
		cause error
	)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.As(err, &usage):
		fmt.Fprintf(a.Stderr, "Error: %s\n", red(usage.Msg))
		cause = usage.Err
	case errors.As(err, &cert):
		fmt.Fprintf(a.Stderr, "Error: %s\n", yellow(cert.Msg))
		cause = cert.Err
	default:
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
	}

	if a.opts.Verbose && cause != nil && a.Log != nil {
		a.Log.Printf("cause: %v", cause)
	}
}

func (a *App) warn(format string, args ...any) {
	fmt.Fprintln(a.Stderr, yellow(fmt.Sprintf(format, args...)))
}
