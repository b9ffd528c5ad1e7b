// Package cmd implements the CLI command structure for thingstodo.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/thingstodo/internal/config"
	"github.com/nibzard/thingstodo/internal/logging"
	"github.com/nibzard/thingstodo/internal/store"
	"github.com/nibzard/thingstodo/internal/todo"
	"github.com/nibzard/thingstodo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the thingstodo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("thingstodo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	logger := logging.New(stderr, logging.OptionsFromConfig(cfg))
	for _, w := range cws.Warnings {
		logger.Warn("config", "warning", w)
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, logger, remainingArgs)
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "edit":
		return editCommand(cfg, logger, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, logger, remainingArgs)
	case "done":
		return doneCommand(cfg, logger, remainingArgs)
	case "mv", "move":
		return mvCommand(cfg, logger, remainingArgs)
	case "clear":
		return clearCommand(cfg, logger, remainingArgs)
	case "theme":
		return themeCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openManager opens the configured store and loads the list from it.
// The returned close function releases the store.
func openManager(cfg *config.Config, logger *log.Logger) (*todo.Manager, func() error, error) {
	st, err := store.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store, err)
	}
	mgr := todo.NewManager(st,
		todo.WithLogger(logger),
		todo.WithDefaultTheme(cfg.DarkByDefault()),
	)
	if err := mgr.Load(); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("loading list: %w", err)
	}
	return mgr, st.Close, nil
}

// withManager runs fn against a loaded manager and closes the store after.
func withManager(cfg *config.Config, logger *log.Logger, fn func(*todo.Manager) error) (err error) {
	mgr, closeStore, err := openManager(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()
	return fn(mgr)
}

// tuiCommand launches the interactive editor.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("thingstodo tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (use ls, add, done ... for scripting)")
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logger := logging.Discard()
	fileLog, err := logging.OpenFile(cfg.LogDir, logging.OptionsFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer fileLog.Close()
		logger = fileLog.Logger
	}

	mgr, closeStore, err := openManager(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Info("tui started", "store", cfg.Store, "path", cfg.StorePath, "items", mgr.Len())
	return ui.RunTUI(ctx, mgr, logger)
}

// lsCommand lists items in display order.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("thingstodo ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pendingOnly := fs.Bool("pending", false, "Only show items that are not done")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		items := mgr.Items()
		if len(items) == 0 {
			fmt.Fprintln(stdout, "No items.")
			return nil
		}
		shown := 0
		for _, it := range items {
			if *pendingOnly && it.Done {
				continue
			}
			printItem(stdout, it)
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(stdout, "Nothing left to do.")
		}
		fmt.Fprintf(stdout, "\n%d left\n", mgr.Remaining())
		return nil
	})
}

// addCommand appends a new item. All remaining arguments form its text.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("add requires item text")
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		if err := mgr.Add(text); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		items := mgr.Items()
		added := items[len(items)-1]
		fmt.Fprintf(stdout, "Added %d: %s\n", added.ID, added.Text)
		return nil
	})
}

// editCommand replaces the text of an item.
func editCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: thingstodo edit ID TEXT")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("edit requires item text")
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		if err := requireItem(mgr, id); err != nil {
			return err
		}
		mgr.BeginEdit(id)
		mgr.SetDraft(text)
		if err := mgr.CommitEdit(); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		fmt.Fprintf(stdout, "Updated %d: %s\n", id, text)
		return nil
	})
}

// rmCommand deletes an item.
func rmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: thingstodo rm ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		if err := requireItem(mgr, id); err != nil {
			return err
		}
		mgr.BeginEdit(id)
		if err := mgr.DeleteEdited(); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		fmt.Fprintf(stdout, "Removed %d\n", id)
		return nil
	})
}

// doneCommand flips the done flag of an item.
func doneCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: thingstodo done ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		if err := requireItem(mgr, id); err != nil {
			return err
		}
		if err := mgr.ToggleDone(id); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		it, _ := mgr.Item(id)
		state := "not done"
		if it.Done {
			state = "done"
		}
		fmt.Fprintf(stdout, "Marked %d %s\n", id, state)
		return nil
	})
}

// mvCommand moves an item in front of another one.
func mvCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: thingstodo mv ID TARGET_ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	target, err := parseID(args[1])
	if err != nil {
		return err
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		if err := requireItem(mgr, id); err != nil {
			return err
		}
		if err := requireItem(mgr, target); err != nil {
			return err
		}
		mgr.StartDrag(id)
		if err := mgr.Drop(target); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		fmt.Fprintf(stdout, "Moved %d before %d\n", id, target)
		return nil
	})
}

// clearCommand removes every item.
func clearCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		n := mgr.Len()
		if err := mgr.ClearAll(); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		fmt.Fprintf(stdout, "Cleared %d items\n", n)
		return nil
	})
}

// themeCommand shows or changes the stored theme.
func themeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: thingstodo theme [light|dark|toggle]")
	}
	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		if len(args) == 1 {
			var err error
			switch strings.ToLower(args[0]) {
			case config.ThemeLight:
				err = mgr.SetTheme(false)
			case config.ThemeDark:
				err = mgr.SetTheme(true)
			case "toggle":
				err = mgr.ToggleTheme()
			default:
				return fmt.Errorf("invalid theme %q (expected light|dark|toggle)", args[0])
			}
			if err != nil {
				return fmt.Errorf("saving: %w", err)
			}
		}
		fmt.Fprintln(stdout, themeName(mgr.Dark()))
		return nil
	})
}

// exportDoc is the document written by export.
type exportDoc struct {
	Theme string      `json:"theme" yaml:"theme"`
	Items []todo.Item `json:"items" yaml:"items"`
}

// exportCommand writes the list as JSON or YAML.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("thingstodo export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "json", "Output format (json|yaml)")
	output := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return withManager(cfg, logger, func(mgr *todo.Manager) error {
		doc := exportDoc{Theme: themeName(mgr.Dark()), Items: mgr.Items()}

		var data []byte
		var err error
		switch strings.ToLower(*format) {
		case "json":
			data, err = json.MarshalIndent(doc, "", "  ")
			data = append(data, '\n')
		case "yaml", "yml":
			data, err = yaml.Marshal(doc)
		default:
			return fmt.Errorf("invalid format %q (expected json|yaml)", *format)
		}
		if err != nil {
			return fmt.Errorf("encoding %s: %w", *format, err)
		}

		if *output == "" {
			_, err = stdout.Write(data)
			return err
		}
		if err := os.WriteFile(*output, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", *output, err)
		}
		logger.Info("exported", "items", len(doc.Items), "path", *output)
		return nil
	})
}

// doctorCommand reports configuration sources and checks the stored data.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("thingstodo doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := cws.Config
	w := stdout

	fmt.Fprintln(w, "thingstodo doctor")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "  ⚠️  No config file (using defaults)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(w, "  ✅ Read %s\n", f)
	}
	for _, warn := range cws.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warn)
	}
	if *verbose {
		fields := make([]string, 0, len(cws.Sources))
		for field := range cws.Sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "    %-15s %s\n", field, cws.Sources[field])
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Store: %s", cfg.Store)
	if cfg.StorePath != "" {
		fmt.Fprintf(w, " (%s)", cfg.StorePath)
	}
	fmt.Fprintln(w)

	st, err := store.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "⚠️  Some checks failed.")
		return fmt.Errorf("doctor checks failed")
	}
	defer st.Close()
	fmt.Fprintln(w, "  ✅ OK")

	keys, err := st.Keys()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Listing keys: %v\n", err)
		allOK = false
	} else if *verbose {
		fmt.Fprintf(w, "  Keys: %s\n", strings.Join(keys, ", "))
	}

	raw, ok, err := st.Get(todo.ItemsKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ %s: %v\n", todo.ItemsKey, err)
		allOK = false
	case !ok:
		fmt.Fprintf(w, "  ⚠️  %s: not stored yet (sample list will be shown)\n", todo.ItemsKey)
	default:
		items, derr := todo.DecodeItems([]byte(raw))
		if derr != nil {
			fmt.Fprintf(w, "  ❌ %s: %v\n", todo.ItemsKey, derr)
			var verr *todo.ValidationError
			if errors.As(derr, &verr) {
				fmt.Fprintf(w, "     at %s\n", verr.Path)
			}
			allOK = false
		} else {
			fmt.Fprintf(w, "  ✅ %s: %d items\n", todo.ItemsKey, len(items))
		}
	}

	rawTheme, ok, err := st.Get(todo.ThemeKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ %s: %v\n", todo.ThemeKey, err)
		allOK = false
	case !ok:
		fmt.Fprintf(w, "  ⚠️  %s: not stored yet (default %s)\n", todo.ThemeKey, cfg.Theme)
	default:
		if dark, derr := todo.DecodeTheme(rawTheme); derr != nil {
			fmt.Fprintf(w, "  ❌ %s: %v\n", todo.ThemeKey, derr)
			allOK = false
		} else {
			fmt.Fprintf(w, "  ✅ %s: %s\n", todo.ThemeKey, themeName(dark))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created by the TUI)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Broken data is replaced by the sample list on load.")
	return fmt.Errorf("doctor checks failed")
}

// configCommand prints an example config file, or the effective config.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("thingstodo config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	effective := fs.Bool("effective", false, "Print the effective configuration instead of an example")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*effective {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}
	if err := toml.NewEncoder(stdout).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "thingstodo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "thingstodo - a small task list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  thingstodo [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                    Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  ls [-pending]          List items")
	fmt.Fprintln(w, "  add TEXT               Add an item")
	fmt.Fprintln(w, "  edit ID TEXT           Replace the text of an item")
	fmt.Fprintln(w, "  rm ID                  Delete an item")
	fmt.Fprintln(w, "  done ID                Toggle the done flag of an item")
	fmt.Fprintln(w, "  mv ID TARGET_ID        Move an item in front of another")
	fmt.Fprintln(w, "  clear                  Delete all items")
	fmt.Fprintln(w, "  theme [light|dark|toggle]  Show or set the theme")
	fmt.Fprintln(w, "  export [-format json|yaml] [-o FILE]  Export the list")
	fmt.Fprintln(w, "  doctor [-v]            Check config and stored data")
	fmt.Fprintln(w, "  config [-effective]    Print an example or the effective config")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// printItem prints a single item line.
func printItem(w io.Writer, it todo.Item) {
	check := "[ ]"
	if it.Done {
		check = "[x]"
	}
	text := strings.ReplaceAll(it.Text, "\n", " ")
	fmt.Fprintf(w, "%s %d  %s\n", check, it.ID, text)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

// requireItem reports unknown ids, which the manager itself ignores.
func requireItem(mgr *todo.Manager, id int64) error {
	if _, ok := mgr.Item(id); !ok {
		return fmt.Errorf("item %d not found", id)
	}
	return nil
}

func themeName(dark bool) string {
	if dark {
		return config.ThemeDark
	}
	return config.ThemeLight
}
