// internal/services/email_templates.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopdash/backend/internal/models"
)

// EmailTemplate is a rendered subject/body pair. Templates are pure functions
// of (order, store); nothing here touches the database or the transport.
type EmailTemplate struct {
	Subject string
	HTML    string
}

// EmailTemplates renders the transactional templates. TrackingBaseURL is the
// public tracking page prefix used for the "Track Your Package" buttons.
type EmailTemplates struct {
	TrackingBaseURL string
}

type templateData struct {
	FirstName      string
	OrderNumber    string
	Address        string
	City           string
	Zip            string
	StoreName      string
	TrackingNumber string
	Carrier        string
	TrackingURL    string
}

var (
	wrongAddressTmpl = template.Must(template.New("wrong_address").Parse(`
<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 32px; background: #fafafa; border-radius: 12px;">
	<h2 style="color: #1a1a2e; margin-bottom: 8px;">Hi {{.FirstName}},</h2>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		We're getting your order <strong>{{.OrderNumber}}</strong> ready to ship, but we noticed
		there might be an issue with your shipping address:
	</p>
	<div style="background: #fff3f3; border: 1px solid #ffcccc; border-radius: 8px; padding: 16px; margin: 20px 0;">
		<p style="color: #cc4444; margin: 0; font-family: monospace; font-size: 14px;">
			{{.Address}}{{if .City}}, {{.City}}{{end}}{{if .Zip}} {{.Zip}}{{end}}
		</p>
	</div>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		Could you please reply to this email with your correct, full shipping address?
		We want to make sure your package arrives safely.
	</p>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		Just reply with:<br>
		<em>Street + number, Postal code, City, Country</em>
	</p>
	<p style="color: #999; font-size: 13px; margin-top: 24px;">
		Thanks for your patience!<br>
		— {{.StoreName}}
	</p>
</div>`))

	postOfficeTmpl = template.Must(template.New("post_office").Parse(`
<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 32px; background: #fafafa; border-radius: 12px;">
	<h2 style="color: #1a1a2e; margin-bottom: 8px;">Hi {{.FirstName}},</h2>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		Great news! Your package for order <strong>{{.OrderNumber}}</strong> has arrived at your
		local post office and is ready for pickup.
	</p>
	<div style="background: #f0fdf4; border: 1px solid #bbf7d0; border-radius: 8px; padding: 16px; margin: 20px 0; text-align: center;">
		<p style="color: #166534; margin: 0; font-size: 14px; font-weight: 600;">
			📦 Tracking: {{if .TrackingNumber}}{{.TrackingNumber}}{{else}}See below{{end}}
		</p>
	</div>
	{{if .TrackingNumber}}
	<p style="text-align: center; margin: 20px 0;">
		<a href="{{.TrackingURL}}"
		   style="display: inline-block; background: #6366f1; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: 600; font-size: 14px;">
			Track Your Package
		</a>
	</p>
	{{end}}
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		Please pick it up within 7 days. Don't forget to bring a valid ID!
	</p>
	<p style="color: #999; font-size: 13px; margin-top: 24px;">
		— {{.StoreName}}
	</p>
</div>`))

	shippedTmpl = template.Must(template.New("shipped").Parse(`
<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 32px; background: #fafafa; border-radius: 12px;">
	<h2 style="color: #1a1a2e; margin-bottom: 8px;">Hi {{.FirstName}},</h2>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		Your order <strong>{{.OrderNumber}}</strong> has been shipped! 🎉
	</p>
	{{if .TrackingNumber}}
	<div style="background: #eff6ff; border: 1px solid #bfdbfe; border-radius: 8px; padding: 16px; margin: 20px 0;">
		<p style="color: #1e40af; margin: 0 0 4px; font-size: 13px; font-weight: 600;">TRACKING NUMBER</p>
		<p style="color: #1e40af; margin: 0; font-family: monospace; font-size: 16px;">{{.TrackingNumber}}</p>
		{{if .Carrier}}<p style="color: #6b7280; margin: 4px 0 0; font-size: 12px;">Carrier: {{.Carrier}}</p>{{end}}
	</div>
	<p style="text-align: center; margin: 20px 0;">
		<a href="{{.TrackingURL}}"
		   style="display: inline-block; background: #6366f1; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: 600; font-size: 14px;">
			Track Your Package
		</a>
	</p>
	{{end}}
	<p style="color: #999; font-size: 13px; margin-top: 24px;">
		— {{.StoreName}}
	</p>
</div>`))

	deliveredTmpl = template.Must(template.New("delivered").Parse(`
<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 32px; background: #fafafa; border-radius: 12px;">
	<h2 style="color: #1a1a2e; margin-bottom: 8px;">Hi {{.FirstName}},</h2>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		Your order <strong>{{.OrderNumber}}</strong> has been delivered! We hope you love it. ✅
	</p>
	<p style="color: #555; line-height: 1.7; font-size: 15px;">
		If something isn't right or you have any questions, don't hesitate to reach out —
		we're here to help.
	</p>
	<p style="color: #999; font-size: 13px; margin-top: 24px;">
		Thanks for shopping with us!<br>
		— {{.StoreName}}
	</p>
</div>`))
)

func (t EmailTemplates) WrongAddress(order *models.Order, store *models.Store) EmailTemplate {
	return EmailTemplate{
		Subject: fmt.Sprintf("Action Required: Please verify your shipping address — Order %s", order.OrderNumber),
		HTML:    t.render(wrongAddressTmpl, order, store),
	}
}

func (t EmailTemplates) PostOffice(order *models.Order, store *models.Store) EmailTemplate {
	return EmailTemplate{
		Subject: fmt.Sprintf("Your package is ready for pickup! — Order %s", order.OrderNumber),
		HTML:    t.render(postOfficeTmpl, order, store),
	}
}

func (t EmailTemplates) Shipped(order *models.Order, store *models.Store) EmailTemplate {
	return EmailTemplate{
		Subject: fmt.Sprintf("Your order is on its way! — Order %s", order.OrderNumber),
		HTML:    t.render(shippedTmpl, order, store),
	}
}

func (t EmailTemplates) Delivered(order *models.Order, store *models.Store) EmailTemplate {
	return EmailTemplate{
		Subject: fmt.Sprintf("Your order has been delivered! — Order %s", order.OrderNumber),
		HTML:    t.render(deliveredTmpl, order, store),
	}
}

func (t EmailTemplates) render(tmpl *template.Template, order *models.Order, store *models.Store) string {
	storeName := store.Name
	if storeName == "" {
		storeName = "The Team"
	}

	data := templateData{
		FirstName:      firstName(order.CustomerName),
		OrderNumber:    order.OrderNumber,
		Address:        order.Address,
		City:           order.City,
		Zip:            order.Zip,
		StoreName:      storeName,
		TrackingNumber: order.TrackingNumber,
		Carrier:        order.Carrier,
	}
	if order.TrackingNumber != "" {
		data.TrackingURL = fmt.Sprintf("%s/%s", strings.TrimRight(t.TrackingBaseURL, "/"), order.TrackingNumber)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Templates are static and data is a plain struct; an execute error
		// here is a programming bug.
		panic(err)
	}
	return buf.String()
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
