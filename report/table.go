package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// WriteTable prints one row per channel with the fitted parameters.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tSamples\tCleaned\tA1\tσA1\tφ1 [rad]\tA2\tφ2 [rad]\tC\tMSE\tPeak LMST [h]\tStatus\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-------\t-------\t-------\t--\t---\t--------\t--\t--------\t-\t---\t-------------\t------\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for _, c := range r.Channels {
		var err error
		if c.Fit == nil {
			_, err = fmt.Fprintf(tw, "%s\t%d\t%d\t-\t-\t-\t-\t-\t-\t-\t-\t%s\n", c.Name, c.Samples, c.Cleaned, c.Error)
		} else {
			f := c.Fit
			_, err = fmt.Fprintf(tw, "%s\t%d\t%d\t%.4g\t%.2g\t%.3f\t%.4g\t%.3f\t%.4g\t%.3g\t%s\t%s\n",
				c.Name, c.Samples, c.Cleaned,
				f.SiderealAmplitude.Value, f.SiderealAmplitude.StdErr, f.SiderealPhase.Value,
				f.SolarAmplitude.Value, f.SolarPhase.Value,
				f.Offset.Value, f.MSE, hours(f.PeakLMST), f.Termination)
		}
		if err != nil {
			return fmt.Errorf("report: write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

func hours(h float64) string {
	if math.IsNaN(h) {
		return "-"
	}
	return fmt.Sprintf("%.2f", h)
}
