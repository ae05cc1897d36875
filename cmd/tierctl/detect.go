package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tierkit/tier"
)

func init() {
	rootCmd.AddCommand(newDetectCmd())
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the number of usable tier banks",
		Long: `The detect command writes a signature to the start of every bank of the
24-bit tier address space and reads them back to find how many banks are
really present. Detection overwrites the first four bytes of each bank.

Example:
  tierctl detect --banks 8
  tierctl detect --backend mmap --path tier.img --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect()
		},
	}
	return cmd
}

type detectResult struct {
	Backend string `json:"backend"`
	Banks   int    `json:"banks"`
	Bytes   int64  `json:"bytes"`
}

func runDetect() (err error) {
	s, err := openTier()
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	banks, err := tier.Detect(s.ch)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	res := detectResult{Backend: backend, Banks: banks, Bytes: int64(banks) * tier.BankSize}

	if jsonOut {
		return printJSON(res)
	}

	if banks == 0 {
		printInfo("No secondary tier present\n")
		return nil
	}
	printInfo("\nTier Detection:\n")
	printInfo("  Backend: %s\n", res.Backend)
	printInfo("  Banks: %d of %d\n", res.Banks, tier.MaxBanks)
	printInfo("  Capacity: %s (%d bytes)\n", formatBytes(res.Bytes), res.Bytes)
	return nil
}
