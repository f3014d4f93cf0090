package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/request"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/report"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/validation"
)

// Status messages shown once an email has been accepted.
const (
	emailedWithCopyMessage = "Estimate emailed — check your inbox (and Exilex will receive a copy)."
	emailedMessage         = "Estimate emailed — check your inbox."
)

// jsonEstimate is the --json output.
type jsonEstimate struct {
	ID              string                  `json:"id"`
	TransactionType model.TransactionType   `json:"transactionType"`
	Inputs          request.EstimateRequest `json:"inputs"`
	Results         model.Breakdown         `json:"results"`
	LineItems       []model.LineItem        `json:"lineItems"`
	Totals          []model.LineItem        `json:"totals"`
	Reference       string                  `json:"reference,omitempty"`
}

// runEstimate drives the form states: calculating, then idle with the
// results, then optionally submitting the email.
func (cli *CLI) runEstimate(ctx context.Context, req request.EstimateRequest) error {
	state := model.NewFormState()

	if err := cli.transition(state, model.StatusCalculating, ""); err != nil {
		return err
	}

	if err := validation.ValidateEstimate(req); err != nil {
		return cli.fail(state, err)
	}

	estimate, err := cli.estimates.Calculate(ctx, req.ToInput())
	if err != nil {
		return cli.fail(state, err)
	}

	if err := cli.transition(state, model.StatusIdle, ""); err != nil {
		return err
	}

	return cli.deliver(ctx, state, estimate)
}

func (cli *CLI) runVerify(ctx context.Context, token string) error {
	state := model.NewFormState()

	if err := cli.transition(state, model.StatusCalculating, ""); err != nil {
		return err
	}

	estimate, err := cli.estimates.Resolve(ctx, token)
	if err != nil {
		return cli.fail(state, err)
	}

	if err := cli.transition(state, model.StatusIdle, ""); err != nil {
		return err
	}

	return cli.deliver(ctx, state, estimate)
}

// deliver prints the estimate and handles --pdf and --email.
func (cli *CLI) deliver(ctx context.Context, state *model.FormState, e model.Estimate) error {
	if err := cli.print(e); err != nil {
		return err
	}

	if cli.output.pdfPath != "" {
		pdf, err := cli.delivery.RenderEstimate(e)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cli.output.pdfPath, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cli.output.pdfPath, err)
		}
		fmt.Fprintf(cli.errOut, "PDF written to %s\n", cli.output.pdfPath)
	}

	if cli.output.email == "" {
		return nil
	}

	if err := cli.transition(state, model.StatusSubmitting, "Sending..."); err != nil {
		return err
	}

	recipient := strings.TrimSpace(cli.output.email)
	if err := validation.ValidateEmail(recipient); err != nil {
		return cli.fail(state, err)
	}
	if err := cli.delivery.SendEstimate(ctx, recipient, e); err != nil {
		return cli.fail(state, err)
	}
	message := emailedMessage
	if cli.delivery.CopiesFirm() {
		message = emailedWithCopyMessage
	}
	return cli.transition(state, model.StatusSucceeded, message)
}

func (cli *CLI) print(e model.Estimate) error {
	if cli.output.json {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonEstimate{
			ID:              e.ID,
			TransactionType: e.Input.Type,
			Inputs:          request.FromInput(e.Input),
			Results:         e.Breakdown,
			LineItems:       e.Breakdown.LineItems(),
			Totals:          e.Breakdown.Totals(),
			Reference:       e.Reference,
		})
	}

	if err := report.WriteText(cli.out, report.NewDocument(e)); err != nil {
		return err
	}
	if e.Reference != "" {
		_, err := fmt.Fprintf(cli.out, "\nReference token: %s\n", e.Reference)
		return err
	}
	return nil
}

// transition moves state and reports its message, if any.
func (cli *CLI) transition(state *model.FormState, next model.FormStatus, message string) error {
	if err := state.Transition(next, message); err != nil {
		return err
	}
	if message != "" {
		fmt.Fprintln(cli.errOut, message)
	}
	return nil
}

// fail moves state to failed and returns err for cobra to report.
func (cli *CLI) fail(state *model.FormState, err error) error {
	if terr := state.Transition(model.StatusFailed, err.Error()); terr != nil {
		return fmt.Errorf("%w (%v)", err, terr)
	}
	return err
}
