package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/util"
)

var summaryLimit int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline counters, cases per state and the municipality ranking",
	Example: `  leishdash summary --uf MA --uf PI --ano 2020
  leishdash summary --snapshot casos.csv --limit 5`,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, res, err := loadFiltered(cmd.Context())
	if err != nil {
		return err
	}

	limit := cfg.Dashboard.TopN
	if summaryLimit > 0 {
		limit = summaryLimit
	}

	out := cmd.OutOrStdout()
	s := aggregate.Summarize(res.Records)
	for _, m := range s.Metrics() {
		fmt.Fprintf(out, "%-24s %s\n", m.Name, util.FormatCount(int(m.Value)))
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nUF\tCasos")
	for _, st := range aggregate.ByState(res.Records) {
		uf := st.State
		if uf == "" {
			uf = "(sem UF)"
		}
		fmt.Fprintf(w, "%s\t%s\n", uf, util.FormatCount(st.Cases))
	}
	fmt.Fprintf(w, "\nTop %d municípios\tUF\tCasos\n", limit)
	for i, m := range aggregate.TopMunicipalities(res.Records, limit) {
		fmt.Fprintf(w, "%d. %s\t%s\t%s\n", i+1, m.Municipality, m.State, util.FormatCount(m.Cases))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	opts := cfg.ViewOptions()
	c := aggregate.Correlate(aggregate.IndicatorTable(res.Records), opts.Indicator, opts.Trend)
	fmt.Fprintf(out, "\nCasos x %s (%d municípios)\n", c.Label, len(c.Points))
	fmt.Fprintf(out, "  Pearson r: %s\n", util.FormatOptional(c.Pearson, 3))
	if t := c.Trend; t != nil {
		fmt.Fprintf(out, "  Tendência: casos = %s + %s·x (R² %s)\n",
			util.FormatDecimal(t.Intercept, 2), util.FormatDecimal(t.Slope, 2), util.FormatDecimal(t.RSquared, 3))
	}
	return nil
}
