package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/panesync/internal/config"
	"github.com/jask/panesync/internal/tui"
)

var keysWrite bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the effective key bindings as TOML",
	Long: `Prints every bindable action with its keys, after applying the
[[keybindings]] overrides from the config file. The output can be pasted
back into the config file.

With --write the effective bindings are saved into the config file instead,
along with the rest of the current configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := tui.NewKeyRegistry()
		if err := r.ApplyKeybindingConfig(cfg.Keybindings); err != nil {
			return err
		}
		bindings := r.ExportKeybindingConfig()

		if keysWrite {
			out := cfg
			out.Keybindings = bindings
			if err := config.Save(out); err != nil {
				return err
			}
			logger.Info("keybindings written", zap.String("path", config.Path()), zap.Int("actions", len(bindings)))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d keybindings to %s\n", len(bindings), config.Path())
			return nil
		}

		doc := struct {
			Keybindings []config.KeybindingConfig `toml:"keybindings"`
		}{Keybindings: bindings}
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(doc); err != nil {
			return fmt.Errorf("encode keybindings: %w", err)
		}
		return nil
	},
}

func init() {
	keysCmd.Flags().BoolVar(&keysWrite, "write", false, "save the effective bindings into the config file")
}
