package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/request"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// DefaultCommission is the commission percentage assumed for a sale.
const DefaultCommission = "5"

// amountFlags are the currency inputs, kept as text so "$750,000" is accepted.
type amountFlags struct {
	price       string
	deposit     string
	mortgage    string
	newMortgage string
	commission  string
}

func (f amountFlags) apply(req *request.EstimateRequest) error {
	fields := []struct {
		name  string
		value string
		dst   *request.Amount
	}{
		{"price", f.price, &req.Price},
		{"deposit", f.deposit, &req.Deposit},
		{"mortgage", f.mortgage, &req.Mortgage},
		{"new-mortgage", f.newMortgage, &req.NewMortgage},
		{"commission", f.commission, &req.CommissionPct},
	}
	for _, field := range fields {
		a, err := request.ParseAmount(field.value)
		if err != nil {
			return fmt.Errorf("--%s: %w", field.name, err)
		}
		*field.dst = a
	}
	return nil
}

func (cli *CLI) newPurchaseCmd() *cobra.Command {
	var (
		amounts        amountFlags
		toronto        bool
		firstTimeBuyer bool
		propertyType   string
	)

	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Estimate the buyer's closing costs and cash required on closing",
		Example: `  estimate purchase --price 750000 --deposit 50000 --mortgage 600000 --toronto --first-time-buyer
  estimate purchase --price '$1,200,000' --property-type condo --pdf estimate.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := request.EstimateRequest{
				TransactionType:  string(model.TransactionPurchase),
				IsToronto:        toronto,
				IsFirstTimeBuyer: firstTimeBuyer,
				PropertyType:     propertyType,
			}
			if err := amounts.apply(&req); err != nil {
				return err
			}
			return cli.runEstimate(cmd.Context(), req)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&amounts.price, "price", "", "Purchase price")
	flags.StringVar(&amounts.deposit, "deposit", "", "Deposit held in trust")
	flags.StringVar(&amounts.mortgage, "mortgage", "", "Mortgage amount; adds the mortgage registration fee")
	flags.BoolVar(&toronto, "toronto", false, "Property is in Toronto (municipal land transfer tax applies)")
	flags.BoolVar(&firstTimeBuyer, "first-time-buyer", false, "Buyer qualifies for the first-time buyer rebate")
	flags.StringVar(&propertyType, "property-type", string(model.PropertyResale), "Property type: resale, new or condo")

	return cmd
}

func (cli *CLI) newSaleCmd() *cobra.Command {
	var amounts amountFlags

	cmd := &cobra.Command{
		Use:     "sale",
		Short:   "Estimate the seller's deductions and net proceeds",
		Example: `  estimate sale --price 750000 --mortgage 400000 --deposit 50000 --commission 4.5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := request.EstimateRequest{TransactionType: string(model.TransactionSale)}
			if err := amounts.apply(&req); err != nil {
				return err
			}
			return cli.runEstimate(cmd.Context(), req)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&amounts.price, "price", "", "Sale price")
	flags.StringVar(&amounts.deposit, "deposit", "", "Deposit already received from the buyer")
	flags.StringVar(&amounts.mortgage, "mortgage", "", "Mortgage balance to pay out")
	flags.StringVar(&amounts.commission, "commission", DefaultCommission, "Realtor commission in percent")

	return cmd
}

func (cli *CLI) newRefinanceCmd() *cobra.Command {
	var amounts amountFlags

	cmd := &cobra.Command{
		Use:     "refinance",
		Short:   "Estimate refinance costs and the net amount advanced",
		Example: `  estimate refinance --mortgage 300000 --new-mortgage 500000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := request.EstimateRequest{TransactionType: string(model.TransactionRefinance)}
			if err := amounts.apply(&req); err != nil {
				return err
			}
			return cli.runEstimate(cmd.Context(), req)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&amounts.mortgage, "mortgage", "", "Balance of the existing mortgage")
	flags.StringVar(&amounts.newMortgage, "new-mortgage", "", "Amount of the new mortgage")

	return cmd
}

func (cli *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <reference>",
		Short: "Recompute an estimate from a reference issued earlier",
		Long: "Recompute an estimate from a reference issued earlier. The reference must\n" +
			"have been sealed with one of the keys in REFERENCE_KEYS and not be expired.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runVerify(cmd.Context(), args[0])
		},
	}
}
