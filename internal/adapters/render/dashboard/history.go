package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

const (
	addressCellWidth = 28
	chartBarWidth    = 20
	chartMonths      = 6
)

type monthBucket struct {
	year  int
	month int
	count int
}

func renderHistory(snapshot domain.Snapshot, s styles) string {
	history := snapshot.History()

	lines := []string{
		s.title.Render("Order history"),
		s.header.Render(fmt.Sprintf("orders: %d", len(history))),
	}
	if len(history) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No orders yet.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderHistoryTable(history, s)))
	if chart := renderMonthlyChart(history, s); chart != "" {
		lines = append(lines, s.section.Render(chart))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistoryTable(history []domain.Order, s styles) string {
	rows := make([][]string, 0, len(history))
	for _, order := range history {
		rows = append(rows, []string{
			string(order.ID),
			formatDate(order.CreatedAt),
			order.Type,
			runewidth.Truncate(order.Address, addressCellWidth, "…"),
			statusLabel(order.Status),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.tableEdge).
		Headers("Order", "Date", "Type", "Address", "Status").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.tableHead
			}
			return s.tableCell
		}).
		Render()
}

// monthlyCounts buckets dated orders by calendar month, oldest first, keeping the most recent
// chartMonths months that have orders.
func monthlyCounts(history []domain.Order) []monthBucket {
	index := map[int]*monthBucket{}
	for _, order := range history {
		if order.CreatedAt.IsZero() {
			continue
		}
		year, month, _ := order.CreatedAt.Date()
		key := year*100 + int(month)
		bucket, ok := index[key]
		if !ok {
			bucket = &monthBucket{year: year, month: int(month)}
			index[key] = bucket
		}
		bucket.count++
	}

	buckets := make([]monthBucket, 0, len(index))
	for _, bucket := range index {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].month < buckets[j].month
	})
	if len(buckets) > chartMonths {
		buckets = buckets[len(buckets)-chartMonths:]
	}

	return buckets
}

func renderMonthlyChart(history []domain.Order, s styles) string {
	buckets := monthlyCounts(history)
	if len(buckets) == 0 {
		return ""
	}

	peak := 0
	for _, bucket := range buckets {
		if bucket.count > peak {
			peak = bucket.count
		}
	}

	lines := []string{s.header.Render("orders per month")}
	for _, bucket := range buckets {
		label := fmt.Sprintf("%2d.%d", bucket.month, bucket.year)
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			label,
			" ",
			renderBar(bucket.count, peak, chartBarWidth, s),
			" ",
			fmt.Sprintf("%d", bucket.count),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBar(value, peak, width int, s styles) string {
	if width <= 0 || peak <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(value) / float64(peak)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
