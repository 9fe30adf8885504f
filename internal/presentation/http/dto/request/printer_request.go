package request

// UpdatePrinterRequest is a partial printer settings override. Omitted
// fields keep their current values.
type UpdatePrinterRequest struct {
	ShopName    *string `json:"shop_name"`
	ShopMessage *string `json:"shop_message"`
	PrinterType *string `json:"printer_type" binding:"omitempty,oneof=network display"`
	PrinterIP   *string `json:"printer_ip"`
	PrinterPort *int    `json:"printer_port" binding:"omitempty,min=1,max=65535"`
}
