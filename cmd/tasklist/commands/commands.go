package commands

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasklist/internal/conventions"
	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/taskservice/memory"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	// BackendMemory is the in-memory demo task service.
	BackendMemory = "memory"
	// BackendSQLite is the SQLite task service.
	BackendSQLite = "sqlite"
	// BackendGoogle is the Google Tasks task service.
	BackendGoogle = "google"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	Trace      bool

	// Task service flags.
	Backend           string
	DBPath            string
	GoogleConfigDir   string
	GoogleListID      string
	MemoryLatency     time.Duration
	MemoryFailureRate float64
	SeedFile          string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("trace", "Export the task service traces to stderr.").BoolVar(&c.Trace)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("backend", "Task service backend (memory, sqlite, google).").Default(BackendMemory).EnumVar(&c.Backend, BackendMemory, BackendSQLite, BackendGoogle)
	app.Flag("db-path", "Path to the SQLite database file.").Envar("TASKLIST_DB_PATH").Default(conventions.DBPath(dataDir)).StringVar(&c.DBPath)
	app.Flag("google-config-dir", "Directory with the Google OAuth client and token files.").Default(filepath.Join(dataDir, conventions.GoogleConfigDir)).StringVar(&c.GoogleConfigDir)
	app.Flag("google-list", "Google Tasks list ID.").Default("@default").StringVar(&c.GoogleListID)
	app.Flag("memory-latency", "Latency of every memory backend call.").Default(memory.DemoLatency.String()).DurationVar(&c.MemoryLatency)
	app.Flag("memory-failure-rate", "Probability [0, 1] of a memory backend call failing.").Default(strconv.FormatFloat(memory.DemoFailureRate, 'f', -1, 64)).Float64Var(&c.MemoryFailureRate)
	app.Flag("seed-file", "YAML file with the initial tasks.").StringVar(&c.SeedFile)

	return c
}
