package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().String("timeout", "20s", "Soft budget per extraction tier (e.g. 30s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("accept-language", "", "Accept-Language header for fetches")
	cmd.PersistentFlags().String("reader-url", "", "Base URL of the remote reader service")
	cmd.PersistentFlags().String("chrome-path", "", "Path to a Chrome/Chromium binary for the browser tier")
	cmd.PersistentFlags().StringP("format", "f", "text", "Output format: text or markdown")
	cmd.PersistentFlags().Int("min-content", DefaultMinContentLength, "Minimum characters for content to count as useful")
	cmd.PersistentFlags().Float64("rate", DefaultRateLimitRPS, "Max requests per second per target host (0 disables)")
}

// lookupFlag finds a flag on the command or any of its parents.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}
