package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// writeMetrics prints every non-zero counter in reg as "name{labels} value".
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), formatLabels(m.GetLabel()), value); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	labels := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return strings.Join(labels, ",")
}
