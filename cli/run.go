package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/crmsession"
	"github.com/viant/crmsession/config"
	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/logger"
	"github.com/viant/crmsession/session"
)

// ErrNotAuthenticated is returned when command requires verified session
var ErrNotAuthenticated = errors.New("not authenticated")

// Run runs command line
func Run(args []string) error {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flagOptions := &Options{}
	parser := flags.NewParser(flagOptions, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	cfg, err := loadConfig(flagOptions)
	if err != nil {
		return err
	}
	log := logger.New(stderr, cfg.LogLevel, logger.Format(cfg.LogFormat))

	registry := prometheus.NewRegistry()
	options := crmsession.NewOptions(cfg)
	options.Logger = log
	options.Registerer = registry
	sessionStore, closer, err := crmsession.Open(ctx, options)
	if err != nil {
		return err
	}
	defer closer.Close()

	cmd := &command{store: sessionStore, stdout: stdout}
	err = cmd.run(ctx, parser.Active.Name, flagOptions)
	if flagOptions.MetricsFile != "" {
		if mErr := prometheus.WriteToTextfile(flagOptions.MetricsFile, registry); mErr != nil {
			log.Error("failed to write metrics", slog.String("file", flagOptions.MetricsFile), logger.Error(mErr))
		}
	}
	return err
}

func loadConfig(options *Options) (*config.Config, error) {
	ret, err := config.Load()
	if err != nil {
		return nil, err
	}
	if options.URL != "" {
		ret.APIURL = options.URL
	}
	if options.Storage != "" {
		ret.StorageURL = options.Storage
	}
	if options.OAuth2ConfigURL != "" {
		ret.OAuth2ConfigURL = options.OAuth2ConfigURL
	}
	if options.LogLevel != "" {
		ret.LogLevel = options.LogLevel
	}
	return ret, nil
}

type command struct {
	store  *session.Store
	stdout io.Writer
}

func (c *command) run(ctx context.Context, name string, options *Options) error {
	switch name {
	case "login":
		if err := c.store.Login(ctx, options.Login.Email, options.Login.Password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		c.printIdentity()
	case "register":
		if err := c.store.Register(ctx, options.Register.Email, options.Register.Password, options.Register.FullName); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		c.printIdentity()
	case "logout":
		c.store.Logout(ctx)
		fmt.Fprintln(c.stdout, "logged out")
	case "whoami":
		c.store.Start(ctx)
		if !c.store.Session().IsAuthenticated {
			return ErrNotAuthenticated
		}
		c.printIdentity()
	case "token":
		c.store.SetToken(ctx, options.Token.Token)
		if options.Token.Verify {
			c.store.FetchUser(ctx)
			if !c.store.Session().IsAuthenticated {
				return fmt.Errorf("credential rejected: %w", ErrNotAuthenticated)
			}
		}
		c.printStatus()
	case "status":
		c.printStatus()
	default:
		return fmt.Errorf("unsupported command: %v", name)
	}
	return nil
}

func (c *command) printIdentity() {
	user := c.store.Session().Identity
	fmt.Fprintf(c.stdout, "%v <%v>\nid: %v\nrole: %v\n", user.DisplayName(), user.Email, user.ID, user.Role)
}

func (c *command) printStatus() {
	current := c.store.Session()
	fmt.Fprintf(c.stdout, "state: %v\n", current.State())
	if current.Identity != nil {
		fmt.Fprintf(c.stdout, "user: %v\nrole: %v\n", current.Identity.Email, current.Role())
	}
	if current.Credential == "" {
		return
	}
	claims, err := credential.ParseClaims(current.Credential)
	if err != nil {
		fmt.Fprintln(c.stdout, "credential: opaque")
		return
	}
	if claims.Type != "" {
		fmt.Fprintf(c.stdout, "credential: %v\n", claims.Type)
	}
	if !claims.Expiry.IsZero() {
		expired := ""
		if claims.Expired(time.Now()) {
			expired = " (expired)"
		}
		fmt.Fprintf(c.stdout, "expires: %v%v\n", claims.Expiry.UTC().Format(time.RFC3339), expired)
	}
}
