package http

import (
	"net/http"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestValidator plugs go-playground/validator into echo.Context.Validate.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (r *requestValidator) Validate(i any) error {
	return r.v.Struct(i)
}

// bindBody decodes and validates a JSON body. Both failures are client errors.
func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

type NewOrganization struct {
	Name  string `json:"name" validate:"required,max=200"`
	Slug  string `json:"slug" validate:"required,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,e164"`
}

type NewOutlet struct {
	Name      string   `json:"name" validate:"required,max=200"`
	ShortName string   `json:"short_name" validate:"max=50"`
	Phone     string   `json:"phone" validate:"omitempty,e164"`
	WhatsApp  string   `json:"whatsapp" validate:"omitempty,e164"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude"`
}

type NewUser struct {
	OrganizationID *uuid.UUID `json:"organization_id"`
	Role           string     `json:"role" validate:"required"`
	Email          string     `json:"email" validate:"required,email"`
	Phone          string     `json:"phone" validate:"omitempty,e164"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Address        string     `json:"address"`
}

type NewItem struct {
	Description string `json:"description" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	UnitPrice   string `json:"unit_price" validate:"required,numeric"`
	WeightKg    string `json:"weight_kg" validate:"omitempty,numeric"`
	Notes       string `json:"notes"`
}

type NewOrder struct {
	OrganizationID  uuid.UUID  `json:"organization_id" validate:"required"`
	OutletID        uuid.UUID  `json:"outlet_id" validate:"required"`
	CustomerID      *uuid.UUID `json:"customer_id"`
	BagNumber       string     `json:"bag_number" validate:"required,max=50"`
	InvoiceNumber   string     `json:"invoice_number" validate:"max=50"`
	TurnaroundHours int        `json:"turnaround_hours" validate:"min=0"`
	Notes           string     `json:"notes"`
	Items           []NewItem  `json:"items" validate:"required,min=1,dive"`
}

type TransitionOrder struct {
	Status string `json:"status" validate:"required"`
}

type ApplyDiscount struct {
	Amount string `json:"amount" validate:"required,numeric"`
}

type NewPayment struct {
	Method        string `json:"method" validate:"required"`
	Amount        string `json:"amount" validate:"required,numeric"`
	TransactionID string `json:"transaction_id"`
	Network       string `json:"network"`
}

type NewRefund struct {
	Method        string `json:"method" validate:"required"`
	TransactionID string `json:"transaction_id"`
	Network       string `json:"network"`
}

type ItemChanges struct {
	Description string `json:"description" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	UnitPrice   string `json:"unit_price" validate:"required,numeric"`
	WeightKg    string `json:"weight_kg" validate:"omitempty,numeric"`
	Notes       string `json:"notes"`
}

type AdvanceItem struct {
	Stage string `json:"stage" validate:"required"`
}

type NewHandover struct {
	FromStage  string     `json:"from_stage"`
	ToStage    string     `json:"to_stage" validate:"required"`
	ReceivedBy *uuid.UUID `json:"received_by"`
}

type NewDefect struct {
	DefectType  string `json:"defect_type" validate:"required"`
	StageFound  string `json:"stage_found" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type ResolveDefect struct {
	Notes string `json:"notes" validate:"required"`
}

type NewDispatch struct {
	OrganizationID      uuid.UUID   `json:"organization_id" validate:"required"`
	SourceOutletID      *uuid.UUID  `json:"source_outlet_id"`
	DestinationOutletID *uuid.UUID  `json:"destination_outlet_id"`
	ItemIDs             []uuid.UUID `json:"item_ids" validate:"required,min=1"`
}

type OrderItem struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	UnitPrice      string    `json:"unit_price"`
	Amount         string    `json:"amount"`
	WeightKg       *string   `json:"weight_kg"`
	Notes          string    `json:"notes"`
	Stage          string    `json:"stage"`
	StageChangedAt time.Time `json:"stage_changed_at"`
}

type Payment struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	Method        string    `json:"method"`
	Amount        string    `json:"amount"`
	Applied       string    `json:"applied"`
	ChangeDue     string    `json:"change_due"`
	TransactionID string    `json:"transaction_id"`
	Network       string    `json:"network"`
	ReceivedBy    uuid.UUID `json:"received_by"`
	PaidAt        time.Time `json:"paid_at"`
}

type Order struct {
	ID                uuid.UUID   `json:"id"`
	OrganizationID    uuid.UUID   `json:"organization_id"`
	OutletID          uuid.UUID   `json:"outlet_id"`
	CustomerID        *uuid.UUID  `json:"customer_id"`
	CreatedBy         uuid.UUID   `json:"created_by"`
	BagNumber         string      `json:"bag_number"`
	InvoiceNumber     string      `json:"invoice_number"`
	Status            string      `json:"status"`
	HeldStatus        string      `json:"held_status,omitempty"`
	PaymentStatus     string      `json:"payment_status"`
	Subtotal          string      `json:"subtotal"`
	DiscountAmount    string      `json:"discount_amount"`
	TotalAmount       string      `json:"total_amount"`
	AmountPaid        string      `json:"amount_paid"`
	AmountOutstanding string      `json:"amount_outstanding"`
	TurnaroundHours   int         `json:"turnaround_hours"`
	DueAt             *time.Time  `json:"due_at"`
	Notes             string      `json:"notes"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	CompletedAt       *time.Time  `json:"completed_at"`
	Version           int64       `json:"version"`
	Items             []OrderItem `json:"items"`
	Payments          []Payment   `json:"payments"`
}

type Handover struct {
	ID           uuid.UUID  `json:"id"`
	FromStage    *string    `json:"from_stage"`
	ToStage      string     `json:"to_stage"`
	HandedOverBy uuid.UUID  `json:"handed_over_by"`
	ReceivedBy   *uuid.UUID `json:"received_by"`
	HandedOverAt time.Time  `json:"handed_over_at"`
	ReceivedAt   *time.Time `json:"received_at"`
}

type Defect struct {
	ID              uuid.UUID  `json:"id"`
	ItemID          uuid.UUID  `json:"item_id"`
	OrderID         uuid.UUID  `json:"order_id"`
	OutletID        uuid.UUID  `json:"outlet_id"`
	DefectType      string     `json:"defect_type"`
	StageFound      string     `json:"stage_found"`
	Description     string     `json:"description"`
	ReportedBy      uuid.UUID  `json:"reported_by"`
	ReportedAt      time.Time  `json:"reported_at"`
	Resolved        bool       `json:"resolved"`
	ResolvedBy      *uuid.UUID `json:"resolved_by"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolutionNotes string     `json:"resolution_notes"`
}

type ItemHistory struct {
	ItemID      uuid.UUID  `json:"item_id"`
	OrderID     uuid.UUID  `json:"order_id"`
	Description string     `json:"description"`
	Stage       string     `json:"stage"`
	Handovers   []Handover `json:"handovers"`
	Defects     []Defect   `json:"defects"`
}

type Dispatch struct {
	ID           uuid.UUID   `json:"id"`
	Source       string      `json:"source"`
	Destination  string      `json:"destination"`
	Status       string      `json:"status"`
	RequestedBy  uuid.UUID   `json:"requested_by"`
	DispatcherID *uuid.UUID  `json:"dispatcher_id"`
	ItemIDs      []uuid.UUID `json:"item_ids"`
	CreatedAt    time.Time   `json:"created_at"`
	AcceptedAt   *time.Time  `json:"accepted_at"`
	StartedAt    *time.Time  `json:"started_at"`
	Version      int64       `json:"version"`
}

type OverdueOrder struct {
	ID                uuid.UUID `json:"id"`
	OrganizationID    uuid.UUID `json:"organization_id"`
	OutletID          uuid.UUID `json:"outlet_id"`
	BagNumber         string    `json:"bag_number"`
	InvoiceNumber     string    `json:"invoice_number"`
	Status            string    `json:"status"`
	DueAt             time.Time `json:"due_at"`
	OverdueSeconds    int64     `json:"overdue_seconds"`
	AmountOutstanding string    `json:"amount_outstanding"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := id.Bytes()
	return &v
}

func toOrder(r *queries.GetOrderQueryResponse) Order {
	out := Order{
		ID:                r.ID.Bytes(),
		OrganizationID:    r.OrganizationID.Bytes(),
		OutletID:          r.OutletID.Bytes(),
		CustomerID:        optionalID(r.CustomerID),
		CreatedBy:         r.CreatedBy.Bytes(),
		BagNumber:         r.BagNumber,
		InvoiceNumber:     r.InvoiceNumber,
		Status:            r.Status.String(),
		PaymentStatus:     r.PaymentStatus.String(),
		Subtotal:          r.Subtotal.String(),
		DiscountAmount:    r.DiscountAmount.String(),
		TotalAmount:       r.TotalAmount.String(),
		AmountPaid:        r.AmountPaid.String(),
		AmountOutstanding: r.AmountOutstanding.String(),
		TurnaroundHours:   r.TurnaroundHours,
		DueAt:             r.DueAt,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		CompletedAt:       r.CompletedAt,
		Version:           r.Version,
		Items:             make([]OrderItem, 0, len(r.Items)),
		Payments:          make([]Payment, 0, len(r.Payments)),
	}
	if r.HeldStatus.Validate() == nil {
		out.HeldStatus = r.HeldStatus.String()
	}

	for _, it := range r.Items {
		item := OrderItem{
			ID:             it.ID.Bytes(),
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice.String(),
			Amount:         it.Amount.String(),
			Notes:          it.Notes,
			Stage:          it.Stage.String(),
			StageChangedAt: it.StageChangedAt,
		}
		if it.WeightKg != nil {
			w := it.WeightKg.String()
			item.WeightKg = &w
		}
		out.Items = append(out.Items, item)
	}

	for _, p := range r.Payments {
		out.Payments = append(out.Payments, Payment{
			ID:            p.ID.Bytes(),
			Kind:          string(p.Kind),
			Method:        p.Method.String(),
			Amount:        p.Amount.String(),
			Applied:       p.Applied.String(),
			ChangeDue:     p.ChangeDue.String(),
			TransactionID: p.TransactionID,
			Network:       string(p.Network),
			ReceivedBy:    p.ReceivedBy.Bytes(),
			PaidAt:        p.PaidAt,
		})
	}
	return out
}

func toDefect(d queries.DefectView) Defect {
	return Defect{
		ID:              d.ID.Bytes(),
		ItemID:          d.ItemID.Bytes(),
		OrderID:         d.OrderID.Bytes(),
		OutletID:        d.OutletID.Bytes(),
		DefectType:      d.Type.String(),
		StageFound:      d.StageFound.String(),
		Description:     d.Description,
		ReportedBy:      d.ReportedBy.Bytes(),
		ReportedAt:      d.ReportedAt,
		Resolved:        d.Resolved,
		ResolvedBy:      optionalID(d.ResolvedBy),
		ResolvedAt:      d.ResolvedAt,
		ResolutionNotes: d.ResolutionNotes,
	}
}

func toDefects(views []queries.DefectView) []Defect {
	out := make([]Defect, 0, len(views))
	for _, d := range views {
		out = append(out, toDefect(d))
	}
	return out
}

func toItemHistory(r *queries.GetItemHistoryQueryResponse) ItemHistory {
	out := ItemHistory{
		ItemID:      r.ItemID.Bytes(),
		OrderID:     r.OrderID.Bytes(),
		Description: r.Description,
		Stage:       r.Stage.String(),
		Handovers:   make([]Handover, 0, len(r.Handovers)),
		Defects:     toDefects(r.Defects),
	}
	for _, h := range r.Handovers {
		view := Handover{
			ID:           h.ID.Bytes(),
			ToStage:      h.ToStage.String(),
			HandedOverBy: h.HandedOverBy.Bytes(),
			ReceivedBy:   optionalID(h.ReceivedBy),
			HandedOverAt: h.HandedOverAt,
			ReceivedAt:   h.ReceivedAt,
		}
		if h.FromStage != nil {
			from := h.FromStage.String()
			view.FromStage = &from
		}
		out.Handovers = append(out.Handovers, view)
	}
	return out
}

func toDispatches(views []queries.DispatchView) []Dispatch {
	out := make([]Dispatch, 0, len(views))
	for _, d := range views {
		items := make([]uuid.UUID, 0, len(d.ItemIDs))
		for _, id := range d.ItemIDs {
			items = append(items, id.Bytes())
		}
		out = append(out, Dispatch{
			ID:           d.ID.Bytes(),
			Source:       d.Source.String(),
			Destination:  d.Destination.String(),
			Status:       d.Status.String(),
			RequestedBy:  d.RequestedBy.Bytes(),
			DispatcherID: optionalID(d.DispatcherID),
			ItemIDs:      items,
			CreatedAt:    d.CreatedAt,
			AcceptedAt:   d.AcceptedAt,
			StartedAt:    d.StartedAt,
			Version:      d.Version,
		})
	}
	return out
}

func toOverdueOrders(views []queries.OverdueOrderView) []OverdueOrder {
	out := make([]OverdueOrder, 0, len(views))
	for _, o := range views {
		out = append(out, OverdueOrder{
			ID:                o.ID.Bytes(),
			OrganizationID:    o.OrganizationID.Bytes(),
			OutletID:          o.OutletID.Bytes(),
			BagNumber:         o.BagNumber,
			InvoiceNumber:     o.InvoiceNumber,
			Status:            o.Status.String(),
			DueAt:             o.DueAt,
			OverdueSeconds:    int64(o.Overdue.Seconds()),
			AmountOutstanding: o.AmountOutstanding.String(),
		})
	}
	return out
}
