package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alnah/go-aidich/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the credential file",
		Long: `Manage the credential file used by run.

The file holds a single line: username,password[,activate_beta]
It is read from config.cfg in the working directory unless --config or
AIDICH_CONFIG points elsewhere.`,
		Example: `  aidich config init alice s3cr3t --beta
  aidich config show`,
	}

	cmd.AddCommand(configInitCmd(env))
	cmd.AddCommand(configShowCmd(env))

	return cmd
}

// configInitCmd creates the "config init" subcommand.
func configInitCmd(env *Env) *cobra.Command {
	var (
		configPath string
		beta       bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init <username> <password>",
		Short: "Write a credential file",
		Long: `Write a credential file with owner-only permissions.

Refuses to overwrite an existing file unless --force is given.`,
		Example: `  aidich config init alice s3cr3t
  aidich config init alice s3cr3t --beta --config ~/.aidich.cfg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{Username: args[0], Password: args[1], Beta: beta}
			return runConfigInit(env, config.ResolvePath(configPath, env.Getenv), cfg, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Credential file (default: config.cfg, env: "+config.EnvConfigPath+")")
	cmd.Flags().BoolVar(&beta, "beta", false, "Enable activate_beta")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

// configShowCmd creates the "config show" subcommand.
func configShowCmd(env *Env) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the credential file with the password masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(env, config.ResolvePath(configPath, env.Getenv))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Credential file (default: config.cfg, env: "+config.EnvConfigPath+")")

	return cmd
}

// runConfigInit handles the "config init" command.
func runConfigInit(env *Env, path string, cfg config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(config.ExpandPath(path)); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Wrote %s\n", path)
	return nil
}

// runConfigShow handles the "config show" command.
func runConfigShow(env *Env, path string) error {
	cfg, err := env.ConfigLoader.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "path=%s\n", path)
	fmt.Fprintf(env.Stdout, "%s\n", cfg)
	return nil
}
