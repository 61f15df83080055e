package report

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stocktrail/stocktrail/internal/domain"
)

const quickChartBase = "https://quickchart.io/chart"

// chartConfig mirrors the Chart.js configuration QuickChart renders.
type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
}

type chartOptions struct {
	Title chartTitle `json:"title"`
}

type chartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// ChartURL builds a QuickChart URL rendering a bar chart of item quantities.
// The frontend embeds the URL as an image; nothing is fetched server-side.
func ChartURL(items []*domain.InventoryItem) (string, error) {
	labels := make([]string, len(items))
	data := make([]int, len(items))
	for i, item := range items {
		labels[i] = item.Name
		data[i] = item.Quantity
	}

	cfg := chartConfig{
		Type: "bar",
		Data: chartData{
			Labels: labels,
			Datasets: []chartDataset{{
				Label:           "Inventory Quantity",
				Data:            data,
				BackgroundColor: "rgba(75, 192, 192, 0.6)",
			}},
		},
		Options: chartOptions{
			Title: chartTitle{Display: true, Text: "Inventory Distribution"},
		},
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("report.ChartURL: %w", err)
	}

	return quickChartBase + "?c=" + url.QueryEscape(string(raw)), nil
}
