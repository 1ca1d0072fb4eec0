package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wellywell/safetap/internal/types"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type PaymentDisplayInfo struct {
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	StatusColor string `json:"statusColor"`
	Description string `json:"description"`
}

var displayLanguage = language.Spanish

// FormatAmount renders an amount in cents as a localized currency string.
func FormatAmount(cents int64, code string) string {
	units := decimal.New(cents, -2)

	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", units.StringFixed(2), code)
	}
	p := message.NewPrinter(displayLanguage)
	return p.Sprint(currency.Symbol(unit.Amount(units.InexactFloat64())))
}

func PaymentDisplay(info types.PaymentInfo) PaymentDisplayInfo {
	result := PaymentDisplayInfo{
		Amount: FormatAmount(info.TotalAmount, info.Currency),
	}

	switch {
	case info.PaymentCount == 0:
		result.Status, result.StatusColor, result.Description = "Sin pago", "gray", "No hay pagos registrados"
	case info.HasConfirmedPayment && !info.HasPendingPayment:
		result.Status, result.StatusColor, result.Description = "Pagado", "green", "Pago confirmado"
	case info.HasConfirmedPayment && info.HasPendingPayment:
		result.Status, result.StatusColor, result.Description = "Parcial", "yellow", "Pago confirmado con pagos pendientes"
	case info.HasPendingPayment:
		result.Status, result.StatusColor, result.Description = "Pendiente", "orange", "Pago pendiente de verificación"
	default:
		result.Status, result.StatusColor, result.Description = "Rechazado", "red", "Pago rechazado"
	}
	return result
}
