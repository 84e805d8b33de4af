// Package orderrepo maps the order aggregate onto the orders, items and
// payments tables. An order is always read and written together with its
// items and payment ledger.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Enumerations are stored by their codes.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID  uuid.UUID  `gorm:"type:uuid"`
	OutletID        uuid.UUID  `gorm:"type:uuid"`
	CustomerID      *uuid.UUID `gorm:"type:uuid"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid"`
	BagNumber       string
	InvoiceNumber   string
	Status          string
	HeldStatus      string
	PaymentStatus   string
	Subtotal        decimal.Decimal `gorm:"type:numeric(12,2)"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)"`
	AmountPaid      decimal.Decimal `gorm:"type:numeric(12,2)"`
	TurnaroundHours int
	DueAt           *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
	CompletedAt     *time.Time
	Version         int64
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the items row.
type ItemDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID        `gorm:"type:uuid"`
	OrderID        uuid.UUID        `gorm:"type:uuid"`
	Description    string
	Quantity       int
	UnitPrice      decimal.Decimal  `gorm:"type:numeric(12,2)"`
	WeightKg       *decimal.Decimal `gorm:"type:numeric(8,2)"`
	Notes          string
	Stage          string
	StageChangedAt time.Time
	CreatedAt      time.Time
}

func (ItemDTO) TableName() string {
	return "items"
}

// PaymentDTO is the payments row. Rows are never updated.
type PaymentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID       `gorm:"type:uuid"`
	OrderID        uuid.UUID       `gorm:"type:uuid"`
	Kind           string
	Method         string
	Amount         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Applied        decimal.Decimal `gorm:"type:numeric(12,2)"`
	ChangeDue      decimal.Decimal `gorm:"type:numeric(12,2)"`
	TransactionID  string
	Network        string
	IdempotencyKey string
	ReceivedBy     uuid.UUID `gorm:"type:uuid"`
	PaidAt         time.Time
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain flattens an order. version is the value the row must carry
// after the write.
func fromDomain(o *order.Order, version int64) (OrderDTO, []ItemDTO, []PaymentDTO) {
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		OrganizationID:  o.OrganizationID().Bytes(),
		OutletID:        o.OutletID().Bytes(),
		CreatedBy:       o.CreatedBy().Bytes(),
		BagNumber:       o.BagNumber(),
		InvoiceNumber:   o.InvoiceNumber(),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		Subtotal:        o.Subtotal().Decimal(),
		DiscountAmount:  o.DiscountAmount().Decimal(),
		TotalAmount:     o.TotalAmount().Decimal(),
		AmountPaid:      o.AmountPaid().Decimal(),
		TurnaroundHours: o.TurnaroundHours(),
		DueAt:           o.DueAt(),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		CompletedAt:     o.CompletedAt(),
		Version:         version,
	}
	if o.Status() == order.StatusOnHold {
		dto.HeldStatus = o.HeldStatus().String()
	}
	if customer := o.CustomerID(); customer != nil {
		id := customer.Bytes()
		dto.CustomerID = &id
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			ID:             item.ID().Bytes(),
			OrganizationID: item.OrganizationID().Bytes(),
			OrderID:        item.OrderID().Bytes(),
			Description:    item.Description(),
			Quantity:       item.Quantity(),
			UnitPrice:      item.UnitPrice().Decimal(),
			WeightKg:       item.WeightKg(),
			Notes:          item.Notes(),
			Stage:          item.Stage().String(),
			StageChangedAt: item.StageChangedAt(),
			CreatedAt:      item.CreatedAt(),
		})
	}

	payments := make([]PaymentDTO, 0, len(o.Payments()))
	for _, p := range o.Payments() {
		payments = append(payments, PaymentDTO{
			ID:             p.ID().Bytes(),
			OrganizationID: p.OrganizationID().Bytes(),
			OrderID:        p.OrderID().Bytes(),
			Kind:           string(p.Kind()),
			Method:         p.Method().String(),
			Amount:         p.Amount().Decimal(),
			Applied:        p.Applied().Decimal(),
			ChangeDue:      p.ChangeDue().Decimal(),
			TransactionID:  p.TransactionID(),
			Network:        string(p.Network()),
			IdempotencyKey: p.IdempotencyKey(),
			ReceivedBy:     p.ReceivedBy().Bytes(),
			PaidAt:         p.PaidAt(),
		})
	}

	return dto, items, payments
}

func toDomain(dto OrderDTO, itemDTOs []ItemDTO, paymentDTOs []PaymentDTO) (*order.Order, error) {
	ids, err := parseUUIDs(dto.ID, dto.OrganizationID, dto.OutletID, dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	held := order.StatusUnknown
	if dto.HeldStatus != "" {
		if held, err = order.ParseStatus(dto.HeldStatus); err != nil {
			return nil, err
		}
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		id, err := kernel.UUIDFromGoogle(*dto.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &id
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	payments := make([]*order.Payment, 0, len(paymentDTOs))
	for _, paymentDTO := range paymentDTOs {
		p, err := paymentToDomain(paymentDTO)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              ids[0],
		OrganizationID:  ids[1],
		OutletID:        ids[2],
		CustomerID:      customerID,
		CreatedBy:       ids[3],
		BagNumber:       dto.BagNumber,
		InvoiceNumber:   dto.InvoiceNumber,
		Status:          status,
		HeldStatus:      held,
		PaymentStatus:   paymentStatus,
		Items:           items,
		Payments:        payments,
		DiscountAmount:  kernel.RestoreMoney(dto.DiscountAmount),
		AmountPaid:      kernel.RestoreMoney(dto.AmountPaid),
		TurnaroundHours: dto.TurnaroundHours,
		DueAt:           dto.DueAt,
		Notes:           dto.Notes,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		CompletedAt:     dto.CompletedAt,
		Version:         dto.Version,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	ids, err := parseUUIDs(dto.ID, dto.OrganizationID, dto.OrderID)
	if err != nil {
		return nil, err
	}
	stage, err := order.ParseStage(dto.Stage)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(order.ItemSnapshot{
		ID:             ids[0],
		OrganizationID: ids[1],
		OrderID:        ids[2],
		Description:    dto.Description,
		Quantity:       dto.Quantity,
		UnitPrice:      kernel.RestoreMoney(dto.UnitPrice),
		WeightKg:       dto.WeightKg,
		Notes:          dto.Notes,
		Stage:          stage,
		StageChangedAt: dto.StageChangedAt,
		CreatedAt:      dto.CreatedAt,
	})
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	ids, err := parseUUIDs(dto.ID, dto.OrganizationID, dto.OrderID, dto.ReceivedBy)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.Method)
	if err != nil {
		return nil, err
	}
	network, err := order.ParseMobileNetwork(dto.Network)
	if err != nil {
		return nil, err
	}

	return order.RestorePayment(order.PaymentSnapshot{
		ID:             ids[0],
		OrganizationID: ids[1],
		OrderID:        ids[2],
		Kind:           order.PaymentKind(dto.Kind),
		Method:         method,
		Amount:         kernel.RestoreMoney(dto.Amount),
		Applied:        kernel.RestoreMoney(dto.Applied),
		ChangeDue:      kernel.RestoreMoney(dto.ChangeDue),
		TransactionID:  dto.TransactionID,
		Network:        network,
		IdempotencyKey: dto.IdempotencyKey,
		ReceivedBy:     ids[3],
		PaidAt:         dto.PaidAt,
	})
}

func parseUUIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
