package render

import (
	"fmt"
	"strings"

	"github.com/tokamak-network/reportgen/internal/classify"
)

// RenderEmail produces a compact inline-styled HTML variant for mail clients:
// headline, KPI row, a short repo digest sized by scope, and a CTA link to
// the full hosted report. Mail clients ignore <style> blocks, so everything
// is inline.
func RenderEmail(rep Report, classified map[string][]classify.CategorizedRepo, reportURL string) string {
	focus := SelectFocusAreas(classified, rep.Range.FocusCount())

	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;color:#1E293B">` + "\n")
	b.WriteString(fmt.Sprintf(`<div style="background:#0F172A;color:#ffffff;padding:24px;text-align:center"><h1 style="margin:0;font-size:20px">%s</h1><div style="color:#94A3B8;font-size:12px;margin-top:4px">%s ~ %s</div></div>`+"\n",
		EscapeHTML(rep.Title), rep.Range.FormatStart("Jan 2, 2006"), rep.Range.FormatEnd("Jan 2, 2006")))

	b.WriteString(`<table style="width:100%;border-collapse:collapse;background:#F8FAFC" role="presentation"><tr>` + "\n")
	writeEmailKPI(&b, FmtComma(rep.Totals.Commits), "Commits")
	writeEmailKPI(&b, FmtComma(rep.Totals.MergedPRs), "Merged PRs")
	writeEmailKPI(&b, FmtComma(rep.Totals.Repos), "Repos")
	writeEmailKPI(&b, FmtShort(rep.Totals.NetChange), "Net lines")
	b.WriteString("</tr></table>\n")

	if rep.Headline != "" {
		b.WriteString(fmt.Sprintf(`<p style="padding:0 24px;font-size:14px;line-height:1.6">%s</p>`+"\n", EscapeHTML(rep.Headline)))
	}

	if len(focus) > 0 {
		b.WriteString(`<div style="padding:0 24px">` + "\n")
		for _, f := range focus {
			cat := classify.CategoryByName(f.Category)
			b.WriteString(fmt.Sprintf(`<div style="border-left:3px solid %s;padding:8px 12px;margin-bottom:8px;background:#F8FAFC"><strong style="font-size:13px">%s</strong> <span style="color:#64748B;font-size:11px">%d commits · %s lines</span><br><span style="font-size:12px;color:#475569">%s</span></div>`+"\n",
				cat.Color, EscapeHTML(f.Repo), f.Commits, FmtShort(f.Changes), EscapeHTML(f.Description)))
		}
		b.WriteString("</div>\n")
	}

	if reportURL != "" {
		b.WriteString(fmt.Sprintf(`<div style="text-align:center;padding:24px"><a href="%s" style="background:#2A72E5;color:#ffffff;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;font-size:14px">Read the full report</a></div>`+"\n", reportURL))
	}

	b.WriteString(`<div style="text-align:center;color:#94A3B8;font-size:11px;padding-bottom:24px">Tokamak Network</div>` + "\n")
	b.WriteString("</div>\n")
	return b.String()
}

func writeEmailKPI(b *strings.Builder, value, label string) {
	fmt.Fprintf(b, `<td style="text-align:center;padding:16px 8px"><div style="font-size:20px;font-weight:bold;color:#2A72E5">%s</div><div style="font-size:10px;color:#64748B;text-transform:uppercase">%s</div></td>`+"\n", value, label)
}
