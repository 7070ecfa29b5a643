package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turanbagtur/novel-translator/internal/adapters/provider"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage provider credentials and call settings",
}

var configSetCmd = &cobra.Command{
	Use:   "set [provider]",
	Short: "Store credentials for a backend",
	Long: `Store or update the API configuration for one backend.
Supported backends: ` + strings.Join(provider.Names, ", ") + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		apiKey, _ := cmd.Flags().GetString("api-key")
		apiURL, _ := cmd.Flags().GetString("url")
		model, _ := cmd.Flags().GetString("model")
		maxTokens, _ := cmd.Flags().GetInt("max-tokens")
		temperature, _ := cmd.Flags().GetFloat64("temperature")
		disabled, _ := cmd.Flags().GetBool("disabled")
		extra, _ := cmd.Flags().GetString("extra")

		cfg, err := c.Configs.Upsert(domain.APIConfig{
			ProviderName: args[0],
			APIKey:       apiKey,
			APIURL:       apiURL,
			Model:        model,
			MaxTokens:    maxTokens,
			Temperature:  temperature,
			Enabled:      !disabled,
			ExtraRaw:     extra,
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved config for %s (key %s)\n", cfg.ProviderName, cfg.APIKey)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.Configs.List()
		if err != nil {
			return err
		}
		for _, cfg := range list {
			state := "enabled"
			if !cfg.Enabled {
				state = "disabled"
			}
			fmt.Printf("%4d  %-20s %-8s key=%s model=%s\n", cfg.ID, cfg.ProviderName, state, cfg.APIKey, cfg.Model)
		}
		return nil
	},
}

var configDeleteCmd = &cobra.Command{
	Use:   "delete [config-id]",
	Short: "Delete a backend configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, err := c.Configs.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted config %d\n", id)
		return nil
	},
}

func init() {
	configSetCmd.Flags().String("api-key", "", "API key")
	configSetCmd.Flags().String("url", "", "Base URL override")
	configSetCmd.Flags().String("model", "", "Model override")
	configSetCmd.Flags().Int("max-tokens", 0, "Max output tokens (default 4000)")
	configSetCmd.Flags().Float64("temperature", 0, "Sampling temperature (default 0.7)")
	configSetCmd.Flags().Bool("disabled", false, "Store the config but keep the backend disabled")
	configSetCmd.Flags().String("extra", "", `Extra settings as JSON, e.g. {"region":"westeurope"}`)

	configCmd.AddCommand(configSetCmd, configListCmd, configDeleteCmd)
	rootCmd.AddCommand(configCmd)
}
