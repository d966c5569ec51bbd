package main

import (
	"fmt"
	"strings"

	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/presenter"
)

const barWidth = 20

// printResult renders the verdict card: headline, metadata, then one bar
// per indicator.
func printResult(res *domain.Result) {
	vm := presenter.Present(res)

	fmt.Println()
	fmt.Printf("  %s (%s confidence)\n", vm.Verdict, vm.ConfidenceLabel)
	if vm.Details != "" {
		fmt.Printf("  %s\n", vm.Details)
	}
	fmt.Println()
	fmt.Printf("  File: %s  Size: %s  Type: %s\n", vm.FileName, vm.FileSize, vm.FileType)
	fmt.Printf("  Analyzed: %s\n", vm.Timestamp)
	fmt.Println()

	for _, ind := range vm.Indicators {
		marker := " "
		if ind.Style == presenter.StyleSuspicious {
			marker = "!"
		}
		fmt.Printf("  %s %-20s %s %6s  %s\n",
			marker, ind.Name, bar(ind.Percent), ind.ScoreLabel, ind.Description)
	}
	fmt.Println()
}

// printHistory renders the recent-analyses panel kept on this side of the
// wire (capped, newest first).
func printHistory(results []*domain.Result) {
	if len(results) == 0 {
		return
	}
	fmt.Println("Recent analyses:")
	for i, res := range results {
		vm := presenter.Present(res)
		fmt.Printf("  %d. %-30s %-20s %6s  %s\n",
			i+1, vm.FileName, vm.Verdict, vm.ConfidenceLabel, vm.Timestamp)
	}
}

func bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}
