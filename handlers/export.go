// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
)

// Export handles GET /polls/{id}/export?format=csv|json|text
func (h *PollHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := pollID(w, r)
	if id == "" {
		return
	}

	p, err := h.repo.Get(id)
	if err != nil {
		respondPollError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "json":
		middleware.SuccessResponse(w, http.StatusOK, p, "")
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(resultsSummary(p)))
	default:
		writeCSV(w, p)
	}
}

func writeCSV(w http.ResponseWriter, p *models.Poll) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "poll-"+p.ID+"-results.csv"))

	status := "Closed"
	if p.IsActive {
		status = "Active"
	}
	expires := "N/A"
	if p.ExpiresAt != nil {
		expires = p.ExpiresAt.Format("2006-01-02 15:04:05 MST")
	}

	// UTF-8 BOM keeps spreadsheet imports happy
	w.Write([]byte("\xef\xbb\xbf"))

	cw := csv.NewWriter(w)
	cw.Write([]string{"Question", p.Question})
	cw.Write([]string{"Created", p.CreatedAt.Format("2006-01-02 15:04:05 MST")})
	cw.Write([]string{"Expires", expires})
	cw.Write([]string{"Total votes", strconv.Itoa(p.TotalVotes)})
	cw.Write([]string{"Status", status})
	cw.Write([]string{})
	cw.Write([]string{"Option", "Votes", "Percentage"})
	for _, opt := range p.Options {
		cw.Write([]string{opt.Text, strconv.Itoa(opt.Votes), percentage(opt.Votes, p.TotalVotes)})
	}
	cw.Flush()
}

// resultsSummary renders a plain-text report with per-option bars and a
// humanized time-to-expiry.
func resultsSummary(p *models.Poll) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", p.Question)
	fmt.Fprintf(&b, "Total: %d vote%s\n", p.TotalVotes, plural(p.TotalVotes))
	switch {
	case !p.IsActive:
		b.WriteString("Status: closed\n")
	case p.ExpiresAt != nil:
		fmt.Fprintf(&b, "Expires: %s\n", humanize.Time(*p.ExpiresAt))
	}
	b.WriteString("\n")

	var leading *models.Option
	for i, opt := range p.Options {
		pct := 0
		if p.TotalVotes > 0 {
			pct = opt.Votes * 100 / p.TotalVotes
		}
		bar := strings.Repeat("#", pct/5) + strings.Repeat(".", 20-pct/5)
		fmt.Fprintf(&b, "%s: %s %d%% (%d)\n", opt.Text, bar, pct, opt.Votes)

		if opt.Votes > 0 && (leading == nil || opt.Votes > leading.Votes) {
			leading = &p.Options[i]
		}
	}

	if leading != nil {
		fmt.Fprintf(&b, "\nLeading: %s\n", leading.Text)
	}
	return b.String()
}

func percentage(votes, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(votes)/float64(total)*100)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
