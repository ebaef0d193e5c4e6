package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"radial-menu/src/config"
	"radial-menu/src/singleinstance"
)

type cliOptions struct {
	menuName   string
	list       bool
	validate   bool
	jsonOutput bool
	verbose    bool
	menuFile   string
}

// menuClient is the delegation surface, satisfied by singleinstance.Client.
type menuClient interface {
	TryShow(ctx context.Context, menuName string) (bool, error)
	TryList(ctx context.Context) (bool, []string, error)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args))
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"radial-menu-cli"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "radial-menu-cli",
		Short:         "Control a running radial-menu instance",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(*opts)
		},
	}

	cmd.Flags().StringVar(&opts.menuName, "menu", "", "Open the named menu (empty opens the first configured menu)")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List the configured menu names")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "Validate the menu configuration file and exit")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	cmd.Flags().StringVar(&opts.menuFile, "menu-file", "", "Menu configuration file (overrides MENU_FILE)")

	return cmd
}

func runWithOptions(opts cliOptions) error {
	// Configure logging BEFORE any other operations.
	if !opts.verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stderr)
		fmt.Fprintf(os.Stderr, "[verbose] Starting radial-menu CLI\n")
	}

	// Load .env so RADIAL_MENU_PORT_* apply before the delegation scan.
	cfg, err := config.LoadWithOptions(config.LoadOptions{MenuFileOverride: opts.menuFile})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.verbose {
		fmt.Fprintf(os.Stderr, "[verbose] Menu file: %s\n", cfg.MenuFile)
	}

	if opts.validate {
		return runValidate(cfg.MenuFile, opts.verbose)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := singleinstance.NewClient()

	if opts.list {
		return runList(ctx, client, opts.jsonOutput, func() ([]string, error) {
			return localMenuNames(cfg.MenuFile)
		})
	}
	return runShow(ctx, client, opts.menuName)
}

// runValidate parses and validates the menu document without a resident.
func runValidate(menuFile string, verbose bool) error {
	doc, err := config.LoadMenus(menuFile)
	if err != nil {
		return err
	}
	if err := config.ValidateDocument(doc); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] %d menus validated\n", len(doc.Menus))
	}
	fmt.Printf("OK: %d menus\n", len(doc.Menus))
	return nil
}

// runShow forwards a show request to the resident. There is no standalone
// fallback: opening a menu needs the resident's hook and overlay.
func runShow(ctx context.Context, client menuClient, name string) error {
	delegated, err := client.TryShow(ctx, name)
	if err != nil {
		return fmt.Errorf("resident rejected the request: %w", err)
	}
	if !delegated {
		return errors.New("no running radial-menu instance found; start radial-menu first")
	}
	log.Printf("Delegated to resident")
	return nil
}

// runList asks the resident for its menu names and falls back to reading the
// local menu file when no resident is running.
func runList(ctx context.Context, client menuClient, jsonOutput bool, local func() ([]string, error)) error {
	delegated, names, err := client.TryList(ctx)
	if err != nil {
		return fmt.Errorf("resident rejected the request: %w", err)
	}
	if !delegated {
		log.Printf("No resident detected, listing from local configuration")
		names, err = local()
		if err != nil {
			return err
		}
	}
	return outputNames(names, jsonOutput)
}

func localMenuNames(menuFile string) ([]string, error) {
	doc, err := config.LoadMenus(menuFile)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Menus))
	for _, m := range doc.Menus {
		names = append(names, m.Name())
	}
	return names, nil
}

func outputNames(names []string, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Menus []string `json:"menus"`
		}{Menus: names})
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	long := []string{"menu", "list", "validate", "json", "verbose", "menu-file"}
	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range long {
			if arg == "-"+name {
				normalized[i] = "--" + name
				break
			}
			if strings.HasPrefix(arg, "-"+name+"=") {
				normalized[i] = "--" + name + arg[len(name)+1:]
				break
			}
		}
	}

	return normalized
}
