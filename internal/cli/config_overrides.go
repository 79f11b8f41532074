package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/confchat/internal/util"
)

// renderFlagKeys maps output flags shared by rendering commands to config keys.
var renderFlagKeys = map[string]string{
	"output":      "render.mode",
	"width":       "render.width",
	"style":       "render.style",
	"flush-fence": "render.flush_unterminated_fence",
	"listen":      "http_addr",
}

func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, keys map[string]string) {
	for flagName, key := range keys {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, flagName, key)
	}
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := cmd.Flags().GetInt(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output mode: plain|pretty|styled|json|ndjson|tui|markdown (default from config)")
	cmd.Flags().Int("width", 0, "wrap width (0 uses config, then the terminal)")
	cmd.Flags().String("style", "", "glamour style for pretty mode")
	cmd.Flags().Bool("flush-fence", false, "keep an unterminated ``` region as a code block")
	cmd.Flags().Bool("noheaders", false, "hide the plain mode header row")
	_ = cmd.RegisterFlagCompletionFunc("output", completeFrom("plain", "pretty", "styled", "json", "ndjson", "tui", "markdown"))
	_ = cmd.RegisterFlagCompletionFunc("style", completeFrom("dark", "light", "dracula", "notty", "pink", "tokyo-night", "ascii"))
}

// completeFrom fuzzy-ranks a fixed candidate list against the typed prefix.
func completeFrom(candidates ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return util.ScoreCompletions(toComplete, candidates, 0), cobra.ShellCompDirectiveNoFileComp
	}
}
