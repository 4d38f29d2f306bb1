package commands

import (
	"github.com/spf13/cobra"
)

type ConfigCmd struct {
	flags configFlags
}

func NewConfigCmd() *cobra.Command {
	cc := &ConfigCmd{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE:  cc.run,
	}

	cc.flags.register(cmd)

	return cmd
}

func (cc *ConfigCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := cc.flags.load(cmd, nil)
	if err != nil {
		return err
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
