// pkg/notifier/summary.go
package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// SummaryRow 摘要邮件中的一行持仓数据
type SummaryRow struct {
	Symbol string
	Price  float64
	// Up 现价不低于库内存量价格时为真，仅用于行颜色展示
	Up bool
}

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"color": func(up bool) string {
		if up {
			return "#16a34a"
		}
		return "#dc2626"
	},
}).Parse(`
<div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; border: 1px solid #e5e7eb;">
  <div style="background-color: #2563eb; padding: 20px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0; font-size: 24px;">Thai Stock Tracker</h1>
    <p style="color: #bfdbfe; margin: 5px 0 0;">Daily Summary</p>
  </div>
  <div style="padding: 20px;">
    <p style="color: #374151; margin-bottom: 20px;">Here is the latest summary of your followed stocks as of <strong>{{.Now}}</strong>:</p>
    <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
      <thead>
        <tr style="background-color: #f9fafb; text-align: left;">
          <th style="padding: 12px; border-bottom: 2px solid #e5e7eb; color: #4b5563;">Stock</th>
          <th style="padding: 12px; border-bottom: 2px solid #e5e7eb; color: #4b5563; text-align: right;">Price</th>
        </tr>
      </thead>
      <tbody>
        {{if .Rows}}{{range .Rows}}
        <tr style="border-bottom: 1px solid #e5e7eb;">
          <td style="padding: 12px; font-weight: bold; color: #1f2937;">{{.Symbol}}</td>
          <td style="padding: 12px; text-align: right; font-weight: bold; color: {{color .Up}};">{{money .Price}} THB</td>
        </tr>
        {{end}}{{else}}
        <tr><td colspan="2" style="padding: 12px; text-align: center; color: #6b7280;">No stocks followed yet.</td></tr>
        {{end}}
      </tbody>
    </table>
  </div>
  <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280;">
    <p style="margin: 0;">Automated message from Thai Stock Tracker.</p>
  </div>
</div>
`))

// BuildDailySummary 渲染每日摘要邮件的HTML正文
func BuildDailySummary(rows []SummaryRow, now time.Time) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Rows []SummaryRow
		Now  string
	}{
		Rows: rows,
		Now:  now.Format("2006-01-02 15:04:05"),
	}

	if err := summaryTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染摘要邮件失败: %w", err)
	}
	return buf.String(), nil
}
