// clipbeat: cycle lines of pasted text through the system clipboard.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clipbeat/clipboard"
	"clipbeat/config"
	"clipbeat/cycler"
	"clipbeat/hotkey"
	"clipbeat/logutil"
	"clipbeat/settings"
	"clipbeat/ui"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipbeat",
		Short: "Cycle lines of pasted text through the clipboard",
		Long: `clipbeat turns a pasted list of lines into clipboard cues: step through
them with the on-screen controls, local keys, or global hot-keys, and each
step puts the next non-blank line on the system clipboard with the current
line highlighted.

Hot-key bindings persist in the per-user config directory. Environment:
  ENABLE_FILE_LOGGING=true        write a rotating debug log
  CLIPBEAT_CONFIG=<path>          override the settings file location
  CLIPBEAT_NO_GLOBAL_HOTKEYS=true skip the OS keyboard hook`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			return run()
		},
	}
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipbeat %s\n", Version)
		},
	}
}

func run() error {
	cfg := config.Load()
	logutil.Setup(cfg.EnableFileLogging)

	clip := clipboard.New()
	engine := cycler.New(clip)

	store := settings.NewStore(cfg.SettingsPath)
	set, warn := store.Load()

	var warnings []string
	if warn != nil {
		warnings = append(warnings, warn.Error())
	}
	if !clip.Available() {
		warnings = append(warnings, "clipboard unavailable, copies will be skipped")
	}

	dispatcher := hotkey.New(!cfg.NoGlobalHotkeys)
	defer dispatcher.Close()
	for _, err := range dispatcher.RegisterAll(set.Hotkeys) {
		log.Printf("hotkey: %v", err)
		warnings = append(warnings, err.Error())
	}

	model := ui.NewModel(ui.Deps{
		Engine:   engine,
		Store:    store,
		Settings: set,
		Hotkeys:  dispatcher,
		Warnings: warnings,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// The marshaling boundary: hook-thread actions enter the UI through the
	// program's own message queue, never by touching model state directly.
	dispatcher.SetNotify(func(a hotkey.Action) {
		p.Send(ui.ActionMsg{Action: a})
	})

	log.Printf("clipbeat %s starting (settings: %s)", Version, store.Path())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
