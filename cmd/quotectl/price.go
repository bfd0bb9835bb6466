package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/serigraph/quotebot/internal/pricing"
)

func newPriceCmd() *cobra.Command {
	var (
		d       pricing.Draft
		charges []string
		extras  []string
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single job and print the breakdown",
		Example: `  quotectl price --size 8.5x11 --sheet 20x30 --price 40 --qty 1000
  quotectl price --size carta --sheet tabloide --price 900 --qty 500 --charge Corte=50 --tiro 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.Quantity <= 0 {
				return fmt.Errorf("--qty must be a positive integer")
			}
			var err error
			if d.Charges, err = parseCharges(charges); err != nil {
				return err
			}
			extraCosts, err := parseCharges(extras)
			if err != nil {
				return err
			}
			for _, x := range extraCosts {
				d.ExtraCosts = append(d.ExtraCosts, pricing.ExtraCost{Description: x.Name, Amount: x.Amount})
			}

			printBreakdown(cmd, pricing.Calculate(d))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&d.Dimension, "size", "", "finished size, WxH or a paper name")
	f.StringVar(&d.SheetSize, "sheet", "", "material sheet size, WxH or a paper name")
	f.Float64Var(&d.MaterialPrice, "price", 0, "material price per 500-sheet ream")
	f.IntVar(&d.Quantity, "qty", 0, "number of pieces")
	f.Float64Var(&d.MarginPercent, "margin", pricing.DefaultMarginPercent, "margin percent")
	f.Float64Var(&d.TiroRetiroCost, "tiro", 0, "tiro y retiro cost")
	f.StringArrayVar(&charges, "charge", nil, "additional charge as Name=amount (repeatable)")
	f.StringArrayVar(&extras, "extra", nil, "extra cost as Description=amount (repeatable)")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}

func parseCharges(values []string) ([]pricing.Charge, error) {
	out := make([]pricing.Charge, 0, len(values))
	for _, v := range values {
		name, raw, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid charge %q, want Name=amount", v)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("invalid amount in %q", v)
		}
		out = append(out, pricing.Charge{Name: strings.TrimSpace(name), Amount: amount})
	}
	return out, nil
}

func printBreakdown(cmd *cobra.Command, b pricing.Breakdown) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Flyer size\t%s\n", b.FlyerSize)
	fmt.Fprintf(w, "Sheet size\t%s\n", b.SheetSize)
	fmt.Fprintf(w, "Flyers per sheet\t%d\n", b.FlyersPerSheet)
	fmt.Fprintf(w, "Required sheets\t%d\n", b.RequiredSheets)
	fmt.Fprintf(w, "Cost per sheet\t%s\n", pricing.FormatMoney(b.CostPerSheet))
	fmt.Fprintf(w, "Paper cost\t%s\n", pricing.FormatMoney(b.PaperCost))
	fmt.Fprintf(w, "Additional\t%s\n", pricing.FormatMoney(b.Additional))
	fmt.Fprintf(w, "Subtotal\t%s\n", pricing.FormatMoney(b.Subtotal))
	fmt.Fprintf(w, "Margin\t%g%%\n", b.MarginPercent)
	fmt.Fprintf(w, "Final cost (IVA incl.)\t%s\n", pricing.FormatMoney(b.FinalCost))
	fmt.Fprintf(w, "Unit price\t%s\n", pricing.FormatMoney(b.UnitPrice))
	w.Flush()
}
