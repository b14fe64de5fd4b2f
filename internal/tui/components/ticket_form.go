package components

import (
	"fmt"
	"strconv"

	"github.com/rivo/tview"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
)

// Ticket is a simulated order. Nothing is sent anywhere; the ticket exists
// so drill-down has an action at the end of it.
type Ticket struct {
	Ticker   graphview.NodeID
	Side     string
	Quantity int
	Price    float64
	Total    float64
}

var ticketSides = []string{"BUY", "SELL"}

// TicketForm is the mock order entry form for the selected ticker. The
// price is pinned to the last stored close.
type TicketForm struct {
	form     *tview.Form
	ticker   graphview.NodeID
	price    float64
	onSubmit func(Ticket)
	onError  func(string)
}

// NewTicketForm creates the order form.
func NewTicketForm(form *tview.Form) *TicketForm {
	tf := &TicketForm{form: form}

	form.SetTitle(" Order Ticket ").SetBorder(true)
	form.AddDropDown("Side", ticketSides, 0, nil)
	form.AddInputField("Quantity", "", 8, tview.InputFieldInteger, nil)
	form.AddButton("Place", tf.submit)

	return tf
}

// View returns the wrapped primitive for layout.
func (tf *TicketForm) View() *tview.Form {
	return tf.form
}

// SetSubmitFunc registers the callback for a completed ticket.
func (tf *TicketForm) SetSubmitFunc(f func(Ticket)) {
	tf.onSubmit = f
}

// SetErrorFunc registers the callback for validation failures.
func (tf *TicketForm) SetErrorFunc(f func(string)) {
	tf.onError = f
}

// SetTicker points the form at a ticker and its last close price.
func (tf *TicketForm) SetTicker(ticker graphview.NodeID, lastClose float64) {
	tf.ticker = ticker
	tf.price = lastClose
	tf.form.SetTitle(fmt.Sprintf(" Order: %s @ %.2f ", graphview.ShortLabel(ticker), lastClose))
}

func (tf *TicketForm) submit() {
	if tf.ticker == "" {
		tf.fail("Select a symbol before placing an order")
		return
	}
	if tf.price <= 0 {
		tf.fail("No price history for " + string(tf.ticker))
		return
	}

	qtyField := tf.form.GetFormItemByLabel("Quantity").(*tview.InputField)
	qty, err := strconv.Atoi(qtyField.GetText())
	if err != nil || qty <= 0 {
		tf.fail("Quantity must be a positive whole number")
		return
	}

	sideIdx, _ := tf.form.GetFormItemByLabel("Side").(*tview.DropDown).GetCurrentOption()
	ticket := Ticket{
		Ticker:   tf.ticker,
		Side:     ticketSides[sideIdx],
		Quantity: qty,
		Price:    tf.price,
		Total:    float64(qty) * tf.price,
	}

	qtyField.SetText("")
	if tf.onSubmit != nil {
		tf.onSubmit(ticket)
	}
}

func (tf *TicketForm) fail(msg string) {
	if tf.onError != nil {
		tf.onError(msg)
	}
}
