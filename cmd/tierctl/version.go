package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tierkit/tier"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	Go        string `json:"go"`
	BankSize  int    `json:"bank_size"`
	MaxBanks  int    `json:"max_banks"`
	AddrSpace int    `json:"addr_space"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information and the tier geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	}
}

func runVersion() error {
	info := versionInfo{
		Version:   version,
		Commit:    commit,
		Built:     date,
		Go:        runtime.Version(),
		BankSize:  tier.BankSize,
		MaxBanks:  tier.MaxBanks,
		AddrSpace: tier.AddrSpace,
	}
	if jsonOut {
		return printJSON(info)
	}
	printInfo("tierctl %s\n", info.Version)
	printInfo("  commit: %s\n", info.Commit)
	printInfo("  built: %s (%s)\n", info.Built, info.Go)
	printInfo("  tier: %d banks of %d bytes\n", info.MaxBanks, info.BankSize)
	return nil
}
