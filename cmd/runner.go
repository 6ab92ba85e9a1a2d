package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/repositories"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The session lives for one process; commands that act as a user sign in first with --username/--password.
type Runner struct {
	config     *shared.Config
	backend    services.Backend
	api        *services.APIService
	httpClient *http.Client
	session    *session.Store
	logger     *log.Logger
	output     io.Writer
	opener     func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Backend    services.Backend
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Opener     func(string) error
}

// NewRunner creates a new Runner with the provided configuration.
//
// A nil Backend or API is built from Config against [shared.Config.BaseURL].
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.RequestTimeout()}
	}
	if opts.Opener == nil {
		opts.Opener = shared.OpenBrowser
	}

	if opts.Backend == nil {
		opts.Backend = newBackend(opts.Config, opts.HTTPClient, opts.Logger)
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.BaseURL(), opts.HTTPClient).
			WithUserAgent(opts.Config.Client.UserAgent)
	}

	return &Runner{
		config:     opts.Config,
		backend:    opts.Backend,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		session:    session.NewStore(),
		logger:     opts.Logger,
		output:     opts.Output,
		opener:     opts.Opener,
	}
}

func newBackend(config *shared.Config, client *http.Client, logger *log.Logger) *services.BackendService {
	return services.NewBackendService(services.BackendOptions{
		BaseURL:           config.BaseURL(),
		HTTPClient:        client,
		RequestsPerSecond: config.Client.RequestsPerSecond,
		UserAgent:         config.Client.UserAgent,
		Logger:            logger,
	})
}

// SetLogger replaces the logger used by subsequent commands.
// A backend client built by [NewRunner] is rebuilt so its request logs follow.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if _, ok := r.backend.(*services.BackendService); ok {
		r.backend = newBackend(r.config, r.httpClient, l)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, usersCommand, videosCommand, uploadCommand, uploadsCommand, apiCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openReceipts opens the configured database and wraps it in an upload repository.
// The caller closes the returned database.
func (r *Runner) openReceipts() (*repositories.UploadRepository, *sql.DB, error) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repositories.NewUploadRepository(db), db, nil
}

// newEngine builds an upload engine that records receipts in receipts, which may be nil.
func (r *Runner) newEngine(receipts tasks.ReceiptStore) *tasks.UploadEngine {
	return tasks.NewUploadEngine(r.backend, receipts, r.logger)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
