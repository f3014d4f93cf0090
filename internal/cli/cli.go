// Package cli implements the estimate command-line tool.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/version"
)

// CLI represents the command-line interface
type CLI struct {
	estimates *service.EstimateService
	delivery  *service.DeliveryService
	out       io.Writer
	errOut    io.Writer
	rootCmd   *cobra.Command

	output outputOptions
}

// Options contain configuration for the CLI
type Options struct {
	Estimates *service.EstimateService
	Delivery  *service.DeliveryService
	// Output receives results, ErrOutput receives status messages.
	Output    io.Writer
	ErrOutput io.Writer
}

type outputOptions struct {
	json    bool
	pdfPath string
	email   string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		estimates: opts.Estimates,
		delivery:  opts.Delivery,
		out:       opts.Output,
		errOut:    opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the command line given by args.
func (cli *CLI) Execute(ctx context.Context, args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "estimate",
		Short:         "Estimate Ontario closing costs",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.out)
	cmd.SetErr(cli.errOut)

	flags := cmd.PersistentFlags()
	flags.BoolVar(&cli.output.json, "json", false, "Print the estimate as JSON")
	flags.StringVar(&cli.output.pdfPath, "pdf", "", "Write the PDF summary to this file")
	flags.StringVar(&cli.output.email, "email", "", "Email the PDF summary to this address")

	cmd.AddCommand(cli.newPurchaseCmd())
	cmd.AddCommand(cli.newSaleCmd())
	cmd.AddCommand(cli.newRefinanceCmd())
	cmd.AddCommand(cli.newVerifyCmd())

	return cmd
}
