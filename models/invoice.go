package models

// InvoiceData is everything the invoice template and the receipt
// email need to render a payment voucher for a paid order.
type InvoiceData struct {
	OrderNumber string        `json:"orderNumber"`
	Date        string        `json:"date"`
	Customer    Customer      `json:"customer"`
	Items       []OrderLine   `json:"items"`
	Subtotal    int           `json:"subtotal"`
	IVA         int           `json:"iva"`
	Total       int           `json:"total"`
	Payment     PaymentResult `json:"paymentDetails"`
}
