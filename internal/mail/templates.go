package mail

import (
	"html/template"
	"strings"
)

var notificationTmpl = template.Must(template.New("notification").Parse(`<div style="font-family: monospace; background: #0A0A0A; color: #EDEDED; padding: 24px; border-radius: 8px;">
  <h2 style="color: #00FF94; margin-bottom: 24px;">&gt; New Project Inquiry</h2>

  <div style="margin-bottom: 16px;">
    <strong style="color: #A1A1AA;">Name:</strong>
    <p style="margin: 4px 0;">{{.Name}}</p>
  </div>

  <div style="margin-bottom: 16px;">
    <strong style="color: #A1A1AA;">Email:</strong>
    <p style="margin: 4px 0;"><a href="mailto:{{.Email}}" style="color: #3B82F6;">{{.Email}}</a></p>
  </div>
{{if .Company}}
  <div style="margin-bottom: 16px;">
    <strong style="color: #A1A1AA;">Company:</strong>
    <p style="margin: 4px 0;">{{.Company}}</p>
  </div>
{{end}}
  <div style="margin-bottom: 16px;">
    <strong style="color: #A1A1AA;">Message:</strong>
    <p style="margin: 4px 0; white-space: pre-wrap;">{{.Message}}</p>
  </div>

  <hr style="border: none; border-top: 1px solid #262626; margin: 24px 0;">

  <p style="color: #A1A1AA; font-size: 12px;">
    Sent from verluna.com contact form
  </p>
</div>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: system-ui, -apple-system, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #0A0A0A; color: #EDEDED; padding: 32px; border-radius: 8px;">
    <h1 style="color: #00FF94; font-size: 24px; margin-bottom: 16px;">Thanks for reaching out, {{.Form.Name}}!</h1>

    <p style="color: #A1A1AA; line-height: 1.6;">
      We've received your message and will get back to you within 24 hours.
    </p>

    <p style="color: #A1A1AA; line-height: 1.6;">
      In the meantime, feel free to:
    </p>

    <ul style="color: #EDEDED; line-height: 1.8;">
      <li>Check out our <a href="{{.SiteURL}}/work" style="color: #3B82F6;">case studies</a></li>
      <li>Read our <a href="{{.SiteURL}}/faq" style="color: #3B82F6;">FAQ</a></li>
      <li>Learn about our <a href="{{.SiteURL}}/services" style="color: #3B82F6;">services</a></li>
    </ul>

    <hr style="border: none; border-top: 1px solid #262626; margin: 24px 0;">

    <p style="color: #A1A1AA; font-size: 14px;">
      Best,<br>
      The Verluna Team
    </p>
  </div>
</div>`))

func renderNotification(form ContactForm) (string, error) {
	var b strings.Builder
	if err := notificationTmpl.Execute(&b, form); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderConfirmation(form ContactForm, siteURL string) (string, error) {
	var b strings.Builder
	data := struct {
		Form    ContactForm
		SiteURL string
	}{Form: form, SiteURL: strings.TrimRight(siteURL, "/")}
	if err := confirmationTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
