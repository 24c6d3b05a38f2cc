// Command quote prints the import cost breakdown for one purchase.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"petquote/internal/config"
	"petquote/internal/services/pricing"
	"petquote/internal/services/rates"
)

type options struct {
	price    string
	shipping string
	rate     string
	provider string
	apiURL   string
	botURL   string
}

func newRootCommand(cfg config.Config) *cobra.Command {
	opts := options{
		provider: cfg.RateProvider,
		apiURL:   cfg.RateAPIURL,
		botURL:   cfg.RateBotURL,
	}

	cmd := &cobra.Command{
		Use:           "quote",
		Short:         "Calculate the landed cost of an animal purchase",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rateText := opts.rate
			if !cmd.Flags().Changed("rate") {
				text, err := fetchWorkingRate(cmd.Context(), opts, cfg)
				if err != nil {
					return err
				}
				rateText = text
			}
			return printQuote(cmd.OutOrStdout(), pricing.CalculateText(opts.price, opts.shipping, rateText))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.price, "price", "", "purchase price in USD")
	flags.StringVar(&opts.shipping, "shipping", "", "shipping fee in USD")
	flags.StringVar(&opts.rate, "rate", "", "USD to TWD rate; fetched from the provider when omitted")
	flags.StringVar(&opts.provider, "provider", opts.provider, "rate provider: fixed, http or bot")
	flags.StringVar(&opts.apiURL, "api-url", opts.apiURL, "base URL of the rate API for the http provider")
	flags.StringVar(&opts.botURL, "bot-url", opts.botURL, "Bank of Taiwan rate page for the bot provider")
	return cmd
}

func fetchWorkingRate(ctx context.Context, opts options, cfg config.Config) (string, error) {
	source, err := rates.NewSource(rates.Options{
		Provider:    opts.provider,
		APIURL:      opts.apiURL,
		BOTURL:      opts.botURL,
		HTTPTimeout: cfg.RateHTTPTimeout,
		Logger:      zerolog.New(os.Stderr).With().Timestamp().Logger(),
	})
	if err != nil {
		return "", err
	}

	rate, err := source.Provider.FetchRate(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch rate: %w", err)
	}
	return rates.WorkingRateText(rate), nil
}

func printQuote(w io.Writer, q pricing.Quote) error {
	d := q.Display()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := [][2]string{
		{"Purchase price (USD)", d.PurchasePrice},
		{"Shipping fee (USD)", d.ShippingFee},
		{"Exchange rate", d.ExchangeRate},
		{"Total (USD)", d.TotalUSD},
		{"PayPal fee (USD)", d.PaypalFee},
		{"PayPal deduction (USD)", d.PaypalDeductionUSD},
		{"PayPal deduction (TWD)", d.PaypalDeductionLocal},
		{"Service fee (TWD)", d.ServiceFee},
		{"Total price (TWD)", d.TotalPrice},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func main() {
	config.LoadEnv()
	cfg := config.Load()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := newRootCommand(cfg).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
