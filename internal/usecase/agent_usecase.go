package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opsdesk/opsdesk/internal/domain"
	"github.com/opsdesk/opsdesk/internal/interpreter"
	"github.com/opsdesk/opsdesk/internal/ports"
	"github.com/opsdesk/opsdesk/pkg/apperror"
)

const maxAuditListLimit = 100

// AgentUseCase interprets a free-text command and dispatches the resulting
// data operation against the target entity's backing collection.
type AgentUseCase struct {
	store  ports.RecordStore
	audit  ports.AuditRepository
	logger *logrus.Logger
}

// NewAgentUseCase creates a new agent use case.
func NewAgentUseCase(store ports.RecordStore, audit ports.AuditRepository, logger *logrus.Logger) *AgentUseCase {
	return &AgentUseCase{
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

// Execute runs one interpretation cycle: classify intent and entity, merge
// text-extracted facts with explicit data, then dispatch per intent.
func (uc *AgentUseCase) Execute(ctx context.Context, cmd domain.Command) (*domain.Result, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, apperror.NewBadRequest("command is required")
	}

	actor := cmd.Actor
	if actor == "" {
		actor = domain.DefaultActor
	}

	intent, ok := interpreter.ClassifyIntent(cmd.Text)
	if !ok {
		return nil, apperror.NewBadRequest("unknown action; use a create, read, update, or delete phrasing")
	}

	descriptor, ok := interpreter.ClassifyEntity(cmd.Text)
	if !ok {
		return nil, apperror.NewBadRequest("unknown entity; name the record type the command targets")
	}

	// Explicit structured data wins over text-extracted facts.
	facts := interpreter.Merge(interpreter.ExtractFacts(cmd.Text), cmd.Data)

	switch intent {
	case domain.IntentCreate:
		return uc.dispatchCreate(ctx, actor, descriptor, facts)
	case domain.IntentRead:
		return uc.dispatchRead(ctx, actor, descriptor, facts)
	case domain.IntentUpdate:
		return uc.dispatchUpdate(ctx, actor, descriptor, facts, cmd.Text)
	case domain.IntentDelete:
		return uc.dispatchDelete(ctx, actor, descriptor, facts, cmd)
	default:
		// unreachable with the fixed intent vocabulary
		return nil, apperror.NewBadRequest(fmt.Sprintf("unsupported action: %s", intent))
	}
}

func (uc *AgentUseCase) dispatchCreate(ctx context.Context, actor string, d *domain.EntityDescriptor, facts map[string]any) (*domain.Result, error) {
	payload := d.BuildPayload(facts)

	if missing := interpreter.MissingFields(payload, d.RequiredFields); len(missing) > 0 {
		return nil, apperror.NewUnprocessableEntity(
			fmt.Sprintf("missing required fields for %s: %s", d.Label, strings.Join(missing, ", ")))
	}

	record, err := uc.store.Insert(ctx, d.Collection, payload)
	if err != nil {
		uc.recordAudit(ctx, actor, domain.IntentCreate, d.Label, payload, err.Error(), false)
		return nil, apperror.NewInternalServer(fmt.Sprintf("agent failed to create the %s", d.Label))
	}

	uc.recordAudit(ctx, actor, domain.IntentCreate, d.Label, payload, record, true)

	return &domain.Result{
		Action:  domain.IntentCreate,
		Entity:  d.Label,
		Summary: fmt.Sprintf("Created %s.", d.Label),
		Data:    map[string]any{"record": record},
	}, nil
}

func (uc *AgentUseCase) dispatchRead(ctx context.Context, actor string, d *domain.EntityDescriptor, facts map[string]any) (*domain.Result, error) {
	// the canonical payload doubles as the filter set on the read path
	filters := d.BuildPayload(facts)

	records, err := uc.store.Select(ctx, d.Collection, filters)
	if err != nil {
		uc.recordAudit(ctx, actor, domain.IntentRead, d.Label, filters, err.Error(), false)
		return nil, apperror.NewInternalServer(fmt.Sprintf("agent failed to read the %s", d.Label))
	}

	return &domain.Result{
		Action:  domain.IntentRead,
		Entity:  d.Label,
		Summary: fmt.Sprintf("Found %d %s(s).", len(records), d.Label),
		Data:    map[string]any{"records": records},
	}, nil
}

func (uc *AgentUseCase) dispatchUpdate(ctx context.Context, actor string, d *domain.EntityDescriptor, facts map[string]any, text string) (*domain.Result, error) {
	id, ok := interpreter.ExtractIdentifier(facts, text)
	if !ok {
		return nil, apperror.NewBadRequest(fmt.Sprintf("a record identifier is required to update a %s", d.Label))
	}

	payload := d.BuildPayload(facts)
	if len(payload) == 0 {
		return nil, apperror.NewBadRequest("no fields to update")
	}

	record, err := uc.store.UpdateByID(ctx, d.Collection, id, payload)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(fmt.Sprintf("%s %s not found", d.Label, id))
		}
		uc.recordAudit(ctx, actor, domain.IntentUpdate, d.Label, payload, err.Error(), false)
		return nil, apperror.NewInternalServer(fmt.Sprintf("agent failed to update the %s", d.Label))
	}

	uc.recordAudit(ctx, actor, domain.IntentUpdate, d.Label, payload, record, true)

	return &domain.Result{
		Action:  domain.IntentUpdate,
		Entity:  d.Label,
		Summary: fmt.Sprintf("Updated %s %s.", d.Label, id),
		Data:    map[string]any{"record": record},
	}, nil
}

func (uc *AgentUseCase) dispatchDelete(ctx context.Context, actor string, d *domain.EntityDescriptor, facts map[string]any, cmd domain.Command) (*domain.Result, error) {
	id, ok := interpreter.ExtractIdentifier(facts, cmd.Text)
	if !ok {
		return nil, apperror.NewBadRequest(fmt.Sprintf("a record identifier is required to delete a %s", d.Label))
	}

	if !cmd.Confirm {
		return nil, apperror.NewConflict(
			fmt.Sprintf("confirmation required to delete %s %s; resubmit with confirm set to true", d.Label, id))
	}

	payload := map[string]any{"id": id}

	record, err := uc.store.DeleteByID(ctx, d.Collection, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(fmt.Sprintf("%s %s not found", d.Label, id))
		}
		uc.recordAudit(ctx, actor, domain.IntentDelete, d.Label, payload, err.Error(), false)
		return nil, apperror.NewInternalServer(fmt.Sprintf("agent failed to delete the %s", d.Label))
	}

	uc.recordAudit(ctx, actor, domain.IntentDelete, d.Label, payload, record, true)

	return &domain.Result{
		Action:  domain.IntentDelete,
		Entity:  d.Label,
		Summary: fmt.Sprintf("Deleted %s %s.", d.Label, id),
		Data:    map[string]any{"recordId": id},
	}, nil
}

// ListAudit retrieves the most recent audit entries for the admin trail view.
func (uc *AgentUseCase) ListAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit <= 0 || limit > maxAuditListLimit {
		limit = maxAuditListLimit
	}

	entries, err := uc.audit.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}

// recordAudit appends one audit entry for a dispatch attempt. A failure to
// write the entry is logged and swallowed so it never masks the primary
// response.
func (uc *AgentUseCase) recordAudit(ctx context.Context, actor string, action domain.Intent, entity string, payload map[string]any, result any, success bool) {
	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		Actor:     actor,
		Action:    string(action),
		Entity:    entity,
		Payload:   payload,
		Result:    result,
		Success:   success,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.audit.Create(ctx, entry); err != nil {
		uc.logger.WithError(err).WithFields(logrus.Fields{
			"actor":  actor,
			"action": action,
			"entity": entity,
		}).Warn("failed to write audit entry")
	}
}
