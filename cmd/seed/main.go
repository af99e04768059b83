// Command seed creates an admin or editor account, or resets the role and
// password of an existing one.
//
//	seed -email admin@example.org -password '...' -name Admin -role admin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/upb/healthedu-backend/app"
	"github.com/upb/healthedu-backend/config"
	"github.com/upb/healthedu-backend/internal/observability"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// options are the parsed command line flags
type options struct {
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Name     string          `json:"name" validate:"max=100"`
	Role     models.UserRole `json:"role" validate:"required,role"`
}

// Normalize implements utils.Normalizer
func (o *options) Normalize() {
	o.Email = models.NormalizeEmail(o.Email)
	o.Name = strings.TrimSpace(o.Name)
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	var role string
	fs.StringVar(&opts.Email, "email", "", "account email (required)")
	fs.StringVar(&opts.Password, "password", os.Getenv("SEED_PASSWORD"), "account password, 8 to 72 characters (default $SEED_PASSWORD)")
	fs.StringVar(&opts.Name, "name", "Administrator", "display name")
	fs.StringVar(&role, "role", string(models.RoleAdmin), "role: admin or editor")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.Role = models.UserRole(role)
	opts.Normalize()

	if err := utils.ValidateStruct(&opts); err != nil {
		return options{}, usageError(err)
	}

	return opts, nil
}

// usageError flattens validation failures into one line, in flag order
func usageError(err error) error {
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}

	var problems []string
	for _, flagName := range []string{"email", "password", "name", "role"} {
		if msg, ok := validationErr.Fields[flagName]; ok {
			problems = append(problems, "-"+msg)
		}
	}
	return errors.New(strings.Join(problems, "; "))
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.New(ctx)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close(context.Background()) }()

	user, created, err := deps.UserService.EnsureUser(ctx, opts.Name, opts.Email, opts.Password, opts.Role)
	if err != nil {
		return err
	}

	action := "updated"
	if created {
		action = "created"
	}
	logger.Info("user "+action,
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return nil
}
