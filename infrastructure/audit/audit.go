package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"warehouse/models"
)

const (
	ActionProductCreate = "product.create"
	ActionProductUpdate = "product.update"
	ActionProductPatch  = "product.patch"
	ActionProductDelete = "product.delete"

	EntityProducts = "products"
)

// Service writes audit records inside the caller transaction, so an audit
// failure rolls back the change it describes.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Write records one change. before/after are stored as JSON; nil is stored as "".
func (s *Service) Write(ctx context.Context, tx bun.Tx, actor, action, entityType string, entityID int64, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return fmt.Errorf("marshal audit before: %w", err)
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return fmt.Errorf("marshal audit after: %w", err)
	}
	if actor == "" {
		actor = "anonymous"
	}
	row := &models.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   fmt.Sprintf("%d", entityID),
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}
	_, err = tx.NewInsert().Model(row).Exec(ctx)
	return err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
