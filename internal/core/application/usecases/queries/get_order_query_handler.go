package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the tables with raw SQL,
// bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFound when the order does not exist, and the
// access error of the actor when they may not read it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	view, err := h.loadOrder(db, query.OrderID())
	if err != nil {
		return nil, err
	}
	if err = authorizeOrderRead(query.Actor(), view.OrganizationID, view.CustomerID); err != nil {
		return nil, err
	}

	if view.Items, err = h.loadItems(db, view.ID); err != nil {
		return nil, err
	}
	if view.Payments, err = h.loadPayments(db, view.ID); err != nil {
		return nil, err
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range view.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	view.Subtotal = subtotal
	view.AmountOutstanding = view.TotalAmount.Sub(view.AmountPaid)

	return view, nil
}

func (h GetOrderQueryHandler) loadOrder(db *gorm.DB, orderID kernel.UUID) (*GetOrderQueryResponse, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			organization_id,
			outlet_id,
			customer_id,
			created_by,
			bag_number,
			invoice_number,
			status,
			held_status,
			payment_status,
			discount_amount,
			total_amount,
			amount_paid,
			turnaround_hours,
			due_at,
			notes,
			created_at,
			updated_at,
			completed_at,
			version
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}

	var (
		view                                 GetOrderQueryResponse
		id, organizationID, outletID, author uuid.UUID
		customerID                           uuid.NullUUID
		status, heldStatus, paymentStatus    string
		discount, total, paid                decimal.Decimal
	)
	if err = rows.Scan(
		&id,
		&organizationID,
		&outletID,
		&customerID,
		&author,
		&view.BagNumber,
		&view.InvoiceNumber,
		&status,
		&heldStatus,
		&paymentStatus,
		&discount,
		&total,
		&paid,
		&view.TurnaroundHours,
		&view.DueAt,
		&view.Notes,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.CompletedAt,
		&view.Version,
	); err != nil {
		return nil, err
	}

	ids, err := toUUIDs(id, organizationID, outletID, author)
	if err != nil {
		return nil, err
	}
	view.ID, view.OrganizationID, view.OutletID, view.CreatedBy = ids[0], ids[1], ids[2], ids[3]

	if view.CustomerID, err = optionalUUID(customerID); err != nil {
		return nil, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return nil, err
	}
	if heldStatus != "" {
		if view.HeldStatus, err = order.ParseStatus(heldStatus); err != nil {
			return nil, err
		}
	}
	if view.PaymentStatus, err = order.ParsePaymentStatus(paymentStatus); err != nil {
		return nil, err
	}

	view.DiscountAmount = kernel.RestoreMoney(discount)
	view.TotalAmount = kernel.RestoreMoney(total)
	view.AmountPaid = kernel.RestoreMoney(paid)

	return &view, rows.Err()
}

func (h GetOrderQueryHandler) loadItems(db *gorm.DB, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			description,
			quantity,
			unit_price,
			weight_kg,
			notes,
			stage,
			stage_changed_at
		FROM items
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item      OrderItemView
			id        uuid.UUID
			unitPrice decimal.Decimal
			weight    decimal.NullDecimal
			stage     string
		)
		if err = rows.Scan(
			&id,
			&item.Description,
			&item.Quantity,
			&unitPrice,
			&weight,
			&item.Notes,
			&stage,
			&item.StageChangedAt,
		); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if item.Stage, err = order.ParseStage(stage); err != nil {
			return nil, err
		}
		if weight.Valid {
			item.WeightKg = &weight.Decimal
		}
		item.UnitPrice = kernel.RestoreMoney(unitPrice)
		item.Amount = item.UnitPrice.Mul(item.Quantity)

		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadPayments(db *gorm.DB, orderID kernel.UUID) ([]OrderPaymentView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			kind,
			method,
			amount,
			applied,
			change_due,
			transaction_id,
			network,
			received_by,
			paid_at
		FROM payments
		WHERE order_id = ?
		ORDER BY paid_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]OrderPaymentView, 0)
	for rows.Next() {
		var (
			payment                    OrderPaymentView
			id, receivedBy             uuid.UUID
			kind, method, network      string
			amount, applied, changeDue decimal.Decimal
			paidAt                     time.Time
		)
		if err = rows.Scan(
			&id,
			&kind,
			&method,
			&amount,
			&applied,
			&changeDue,
			&payment.TransactionID,
			&network,
			&receivedBy,
			&paidAt,
		); err != nil {
			return nil, err
		}

		ids, idErr := toUUIDs(id, receivedBy)
		if idErr != nil {
			return nil, idErr
		}
		payment.ID, payment.ReceivedBy = ids[0], ids[1]

		if payment.Method, err = order.ParsePaymentMethod(method); err != nil {
			return nil, err
		}
		if payment.Network, err = order.ParseMobileNetwork(network); err != nil {
			return nil, err
		}
		payment.Kind = order.PaymentKind(kind)
		payment.Amount = kernel.RestoreMoney(amount)
		payment.Applied = kernel.RestoreMoney(applied)
		payment.ChangeDue = kernel.RestoreMoney(changeDue)
		payment.PaidAt = paidAt

		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
