package stock

import (
	"fmt"

	"github.com/fekuna/omnipos-rental-service/internal/model"
)

// NewMovement builds an unsaved movement. Empty refType, refID and userID
// are stored as NULL.
func NewMovement(officeID, productID string, t model.MovementType, change int, refType, refID, notes, userID string) model.StockMovement {
	m := model.StockMovement{
		OfficeID:       officeID,
		ProductID:      productID,
		MovementType:   t,
		QuantityChange: change,
		Notes:          notes,
	}
	if refType != "" {
		m.ReferenceType = &refType
	}
	if refID != "" {
		m.ReferenceID = &refID
	}
	if userID != "" && userID != "unknown" {
		m.CreatedBy = &userID
	}
	return m
}

// LockKey is the distributed lock key for one (office, product) stock item.
func LockKey(officeID, productID string) string {
	return fmt.Sprintf("lock:stock:%s:%s", officeID, productID)
}
