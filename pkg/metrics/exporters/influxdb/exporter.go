// Package influxdb exports opencensus views to an influxdb backend.
package influxdb

import (
	"context"
	"fmt"

	"go.opencensus.io/stats/view"
)

var _ view.Exporter = &Exporter{}

// tags representing opencensus view metadata as influxdb tags
const (
	descriptionTag = "description"
	unitTag        = "unit"
	aggregationTag = "aggregation"

	valueField = "value"
	minField   = "min"
	maxField   = "max"
	meanField  = "mean"
	countField = "count"
)

// Exporter is an opencensus exporter for influxdb
type Exporter struct {
	store        Store
	errorHandler func(error)
	customTags   map[string]string
}

func defaultExporter() *Exporter {
	sink, _ := NewStore()
	return &Exporter{
		errorHandler: func(_ error) {},
		store:        sink,
	}
}

// NewExporter creates a new influxdb exporter.
//
// Use options to configure the influxdb store, an error handler and a map
// of custom tags added to every written record.
func NewExporter(opts ...Option) *Exporter {
	e := defaultExporter()
	for _, apply := range opts {
		apply(e)
	}
	return e
}

// ExportView sends collected metrics to the backend sink
func (e *Exporter) ExportView(viewData *view.Data) {
	points := make([]MetricPoint, 0, len(viewData.Rows))

	for _, row := range viewData.Rows {
		fields := make(map[string]interface{}, 4)
		tags := make(map[string]string, len(e.customTags)+len(row.Tags)+3)

		if viewData.View.Description != "" {
			tags[descriptionTag] = viewData.View.Description
		}
		tags[unitTag] = viewData.View.Measure.Unit()

		switch d := row.Data.(type) {
		case *view.CountData:
			fields[valueField] = float64(d.Value)
			tags[aggregationTag] = "count"
		case *view.SumData:
			fields[valueField] = d.Value
			tags[aggregationTag] = "sum"
		case *view.LastValueData:
			fields[valueField] = d.Value
			tags[aggregationTag] = "last"
		case *view.DistributionData:
			fields[minField] = d.Min
			fields[maxField] = d.Max
			fields[meanField] = d.Mean
			fields[countField] = d.Count
			tags[aggregationTag] = "distribution"
		default:
			e.errorHandler(fmt.Errorf("unknown AggregationData type: %T", row.Data))
			return
		}

		for k, v := range e.customTags {
			tags[k] = v
		}
		for _, rowTag := range row.Tags {
			tags[rowTag.Key.Name()] = rowTag.Value
		}

		points = append(points, MetricPoint{
			Measurement: viewData.View.Name,
			Tags:        tags,
			Fields:      fields,
			Timestamp:   viewData.End,
		})
	}

	if err := e.store.WriteBatch(context.Background(), points); err != nil {
		e.errorHandler(err)
	}
}
