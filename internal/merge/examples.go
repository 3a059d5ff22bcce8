package merge

// TemplateExample returns a static reference template shown for user
// guidance. No file I/O is involved.
func TemplateExample() string {
	return `Dear {{first_name}} {{last_name}},

We are pleased to inform you about your recent order #{{order_id}}.

Order details:
- Item: {{product_name}}
- Quantity: {{quantity}}
- Total: {{total_amount}}

Please contact us at {{contact_email}} if you have any questions.

Best regards,
{{company_name}}`
}

// CSVExample returns the header row matching TemplateExample.
func CSVExample() string {
	return "first_name,last_name,order_id,product_name,quantity,total_amount,contact_email,company_name"
}
