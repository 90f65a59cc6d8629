// Package mutation provides the single coordination point every CRUD
// operation passes through: access decision, store mutation, audit
// write and data version write sequenced as one logical unit.
package mutation

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartnerAccessResolver computes partner scoping for a principal
type PartnerAccessResolver interface {
	Resolve(ctx context.Context, principal access.Principal) (*access.PartnerAccessInfo, error)
}

// Snapshotter is implemented by entities that can report their full
// denormalized state for auditing and versioning.
type Snapshotter interface {
	GetID() uuid.UUID
	Snapshot() map[string]any
}

// Mutation describes one mutating operation against a managed entity
type Mutation struct {
	Principal access.Principal
	Action    access.Action
	// Entity is the entity-type name, e.g. "Customer"
	Entity string
	// EntityID is the mutation target; uuid.Nil for CREATE, where the
	// ID comes from the created entity.
	EntityID uuid.UUID
	// Resource identifies the target for the access decision. Its
	// Content gate is filled from the operation policy when empty.
	Resource access.Resource
	// Before loads the pre-mutation state. Required for UPDATE and the
	// delete actions; ignored for CREATE.
	Before func(ctx context.Context) (map[string]any, error)
	// Execute performs the mutation against the durable store and
	// returns the mutated/created entity, or nil after a hard delete.
	Execute func(ctx context.Context) (Snapshotter, error)
}

// Facade sequences every accepted mutation as: decision check, store
// mutation, audit write, version write. A denied mutation aborts before
// the store is touched and writes nothing.
type Facade struct {
	partnerResolver PartnerAccessResolver
	policies        *access.PolicyRegistry
	auditRepo       audit.LogRepository
	versionRepo     audit.VersionRepository
	logger          *zap.Logger
}

// NewFacade creates a new mutation facade
func NewFacade(
	partnerResolver PartnerAccessResolver,
	policies *access.PolicyRegistry,
	auditRepo audit.LogRepository,
	versionRepo audit.VersionRepository,
	logger *zap.Logger,
) *Facade {
	return &Facade{
		partnerResolver: partnerResolver,
		policies:        policies,
		auditRepo:       auditRepo,
		versionRepo:     versionRepo,
		logger:          logger,
	}
}

// Mutate runs one mutation through the full sequence. The audit and
// version writes are synchronous parts of the critical path, not
// fire-and-forget. They are deliberately not wrapped in a transaction
// with the primary mutation: a committed mutation whose audit or
// version write fails is logged as an operational error and still
// returned, rather than reversing an already-visible change.
func (f *Facade) Mutate(ctx context.Context, m Mutation) (Snapshotter, error) {
	if !m.Action.IsMutation() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Mutation action must be create, update or delete")
	}
	if m.Entity == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity name cannot be empty")
	}
	if m.Execute == nil {
		return nil, shared.NewDomainError("INVALID_MUTATION", "Mutation must provide an execute function")
	}

	policy := f.policies.PolicyFor(m.Entity, m.Action)
	if !policy.RoleAllowed(m.Principal.Role) {
		f.logDenied(m, "role not permitted for operation")
		return nil, shared.ErrForbidden
	}

	resource := m.Resource
	if resource.Entity == "" {
		resource.Entity = m.Entity
	}
	if resource.Content == "" {
		resource.Content = policy.Content
	}

	partnerAccess, err := f.partnerResolver.Resolve(ctx, m.Principal)
	if err != nil {
		return nil, err
	}

	// The decision must complete, and pass, strictly before the store
	// mutation begins.
	decision := access.Decide(m.Principal, partnerAccess, resource, m.Action)
	if !decision.Allowed() {
		f.logDenied(m, decision.Reason)
		return nil, shared.ErrForbidden
	}

	var before map[string]any
	if m.Action != access.ActionCreate {
		if m.Before == nil {
			return nil, shared.NewDomainError("INVALID_MUTATION", "Non-create mutations must provide a before loader")
		}
		before, err = m.Before(ctx)
		if err != nil {
			return nil, err
		}
	}

	result, err := m.Execute(ctx)
	if err != nil {
		return nil, err
	}

	entityID := m.EntityID
	if entityID == uuid.Nil && result != nil {
		entityID = result.GetID()
	}

	var after map[string]any
	if m.Action == access.ActionCreate || m.Action == access.ActionUpdate {
		if result != nil {
			after = result.Snapshot()
		}
	}

	f.writeAuditLog(ctx, m, entityID, before, after)
	f.writeDataVersion(ctx, m, entityID, after)

	return result, nil
}

// writeAuditLog appends the audit entry for a committed mutation.
// Failure here is an operational error, not a rollback trigger.
func (f *Facade) writeAuditLog(ctx context.Context, m Mutation, entityID uuid.UUID, before, after map[string]any) {
	entry, err := audit.NewLogEntry(m.Principal.ID, m.Action, m.Entity, entityID, before, after, requestMetadataFrom(ctx))
	if err == nil {
		err = f.auditRepo.Append(ctx, entry)
	}
	if err != nil {
		f.logger.Error("Audit write failed for committed mutation",
			zap.String("entity", m.Entity),
			zap.String("entity_id", entityID.String()),
			zap.String("action", string(m.Action)),
			zap.String("user_id", m.Principal.ID.String()),
			zap.Error(err))
	}
}

// writeDataVersion appends the version snapshot for create and update.
// Deletions are excluded from versioning.
func (f *Facade) writeDataVersion(ctx context.Context, m Mutation, entityID uuid.UUID, after map[string]any) {
	if m.Action != access.ActionCreate && m.Action != access.ActionUpdate {
		return
	}
	version, err := audit.NewDataVersion(m.Entity, entityID, after, m.Principal.ID, m.Action)
	if err == nil {
		err = f.versionRepo.Append(ctx, version)
	}
	if err != nil {
		f.logger.Error("Data version write failed for committed mutation",
			zap.String("entity", m.Entity),
			zap.String("entity_id", entityID.String()),
			zap.String("change_type", string(m.Action)),
			zap.Error(err))
	}
}

// AuthorizeRead evaluates read access to a resource. It returns the
// scope filter to intersect into queries, nil meaning unscoped access.
func (f *Facade) AuthorizeRead(ctx context.Context, principal access.Principal, resource access.Resource) (*access.ScopeFilter, error) {
	policy := f.policies.PolicyFor(resource.Entity, access.ActionRead)
	if !policy.RoleAllowed(principal.Role) {
		return nil, shared.ErrForbidden
	}
	if resource.Content == "" {
		resource.Content = policy.Content
	}

	partnerAccess, err := f.partnerResolver.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	decision := access.Decide(principal, partnerAccess, resource, access.ActionRead)
	if !decision.Allowed() {
		return nil, shared.ErrForbidden
	}
	return decision.Filter, nil
}

func (f *Facade) logDenied(m Mutation, reason string) {
	f.logger.Warn("Mutation denied",
		zap.String("entity", m.Entity),
		zap.String("action", string(m.Action)),
		zap.String("user_id", m.Principal.ID.String()),
		zap.String("role", string(m.Principal.Role)),
		zap.String("reason", reason))
}
