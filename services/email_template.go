package services

import (
	"fmt"
	"html/template"
	"strings"
)

// StatusEmail is a rendered status-change notification.
type StatusEmail struct {
	Subject string
	Text    string
	HTML    string
}

type emailMetaItem struct {
	Label string
	Value string
}

const emailSignature = "Training & Placement Cell"

// BuildStatusEmail renders the subject and bodies for a status change.
// portalURL is optional; when set the HTML body gets a button to it.
func BuildStatusEmail(studentName, status, portalURL string) StatusEmail {
	name := strings.TrimSpace(studentName)
	if name == "" {
		name = "Student"
	}
	status = strings.TrimSpace(status)

	subject := fmt.Sprintf("Application status updated: %s", status)

	paragraphs := []string{
		fmt.Sprintf("Dear %s,", name),
		fmt.Sprintf("The status of your job application has been updated to <strong>%s</strong>.", status),
		"Please log in to the placement portal to view the details of your application.",
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Dear %s,\n\n", name))
	text.WriteString(fmt.Sprintf("The status of your job application has been updated to: %s.\n\n", status))
	text.WriteString("Please log in to the placement portal to view the details of your application.\n")
	if url := strings.TrimSpace(portalURL); url != "" {
		text.WriteString(url + "\n")
	}
	text.WriteString("\nRegards,\n" + emailSignature + "\n")

	html := buildEmailTemplate(
		subject,
		paragraphs,
		[]emailMetaItem{{Label: "New status", Value: status}},
		"Open placement portal",
		portalURL,
		template.HTMLEscapeString("Regards, "+emailSignature),
	)

	return StatusEmail{Subject: subject, Text: text.String(), HTML: html}
}

var basicHTMLReplacer = strings.NewReplacer(
	"&lt;strong&gt;", "<strong>",
	"&lt;/strong&gt;", "</strong>",
)

func buildEmailTemplate(subject string, paragraphs []string, meta []emailMetaItem, buttonText, buttonURL, footerHTML string) string {
	var content strings.Builder
	for _, paragraph := range paragraphs {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}
		escaped := template.HTMLEscapeString(trimmed)
		escaped = strings.ReplaceAll(escaped, "\n", "<br />")
		escaped = basicHTMLReplacer.Replace(escaped)
		content.WriteString(`<p style="margin:0 0 18px 0;line-height:1.7;word-break:break-word;">`)
		content.WriteString(escaped)
		content.WriteString(`</p>`)
	}

	metaSection := ""
	rows := make([]emailMetaItem, 0, len(meta))
	for _, item := range meta {
		label := strings.TrimSpace(item.Label)
		value := strings.TrimSpace(item.Value)
		if label == "" || value == "" {
			continue
		}
		rows = append(rows, emailMetaItem{Label: label, Value: value})
	}
	if len(rows) > 0 {
		var metaBuilder strings.Builder
		metaBuilder.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" width="100%" style="margin:0 0 24px 0;border:1px solid #e5e7eb;border-radius:12px;background-color:#f9fafb;"><tbody>`)
		for _, row := range rows {
			metaBuilder.WriteString(fmt.Sprintf(`<tr><td style="padding:12px 16px;font-size:13px;color:#6b7280;width:38%%;">%s</td><td style="padding:12px 16px;font-size:15px;color:#111827;font-weight:600;">%s</td></tr>`,
				template.HTMLEscapeString(row.Label), template.HTMLEscapeString(row.Value)))
		}
		metaBuilder.WriteString(`</tbody></table>`)
		metaSection = metaBuilder.String()
	}

	buttonSection := ""
	if strings.TrimSpace(buttonText) != "" && strings.TrimSpace(buttonURL) != "" {
		buttonSection = fmt.Sprintf(`<div style="text-align:center;margin:12px 0 24px 0;">
<a href="%s" style="display:inline-block;padding:12px 28px;background-color:#2563eb;color:#ffffff;text-decoration:none;border-radius:999px;font-weight:600;">%s</a>
</div>`, template.HTMLEscapeString(buttonURL), template.HTMLEscapeString(buttonText))
	}

	footerSection := ""
	if strings.TrimSpace(footerHTML) != "" {
		footerSection = fmt.Sprintf(`<div style="color:#6b7280;font-size:13px;line-height:1.7;">%s</div>`, footerHTML)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
<div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
<h1 style="margin:0;font-size:22px;font-weight:700;color:#111827;line-height:1.35;">%s</h1>
<div style="margin-top:20px;color:#1f2937;font-size:16px;line-height:1.75;">
%s
</div>
%s
%s
%s
</div>
</div>
</body>
</html>`, template.HTMLEscapeString(subject), template.HTMLEscapeString(subject), content.String(), metaSection, buttonSection, footerSection)
}
