package v1_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail/internal/domain"
	"github.com/stocktrail/stocktrail/internal/notify"
	"github.com/stocktrail/stocktrail/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject tenant/user/role into context for DoCtx
// ---------------------------------------------------------------------------

func tenantCtx(tenantID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyTenantID, tenantID)
	return ctx
}

func roleCtx(tenantID uuid.UUID, role string) context.Context {
	ctx := tenantCtx(tenantID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, role)
	return ctx
}

func userCtx(tenantID, userID uuid.UUID, name, role string) context.Context {
	ctx := roleCtx(tenantID, role)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserName, name)
	return ctx
}

func managerCtx(tenantID uuid.UUID) context.Context {
	return roleCtx(tenantID, domain.RoleManager)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	tenants  domain.TenantRepository
	users    domain.UserRepository
	projects domain.ProjectRepository
	items    domain.ItemRepository
	audit    domain.AuditRepository
}

func (m *mockDataStore) Tenants() domain.TenantRepository   { return m.tenants }
func (m *mockDataStore) Users() domain.UserRepository       { return m.users }
func (m *mockDataStore) Projects() domain.ProjectRepository { return m.projects }
func (m *mockDataStore) Items() domain.ItemRepository       { return m.items }
func (m *mockDataStore) Audit() domain.AuditRepository      { return m.audit }

// ---------------------------------------------------------------------------
// Mock TenantRepository
// ---------------------------------------------------------------------------

type mockTenantRepo struct {
	createFunc    func(ctx context.Context, t *domain.Tenant) error
	getByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	getBySlugFunc func(ctx context.Context, slug string) (*domain.Tenant, error)
	listFunc      func(ctx context.Context) ([]*domain.Tenant, error)
}

func (m *mockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.createFunc(ctx, t)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return m.getBySlugFunc(ctx, slug)
}

func (m *mockTenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock ProjectRepository
// ---------------------------------------------------------------------------

type mockProjectRepo struct {
	createFunc  func(ctx context.Context, p *domain.Project) error
	getByIDFunc func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Project, error)
	updateFunc  func(ctx context.Context, p *domain.Project) error
	listFunc    func(ctx context.Context, tenantID uuid.UUID) ([]*domain.Project, error)
	deleteFunc  func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Project, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.createFunc(ctx, p)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Project, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return m.updateFunc(ctx, p)
}

func (m *mockProjectRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Project, error) {
	return m.listFunc(ctx, tenantID)
}

func (m *mockProjectRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) (*domain.Project, error) {
	return m.deleteFunc(ctx, tenantID, id)
}

// ---------------------------------------------------------------------------
// Mock ItemRepository
// ---------------------------------------------------------------------------

type mockItemRepo struct {
	createFunc        func(ctx context.Context, item *domain.InventoryItem) error
	createBatchFunc   func(ctx context.Context, items []*domain.InventoryItem) error
	getByIDFunc       func(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error)
	listByProjectFunc func(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error)
	patchFunc         func(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch) (*domain.InventoryItem, error)
	deleteFunc        func(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error)
	summaryFunc       func(ctx context.Context, tenantID uuid.UUID) ([]*domain.ProjectSummary, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	return m.createFunc(ctx, item)
}

func (m *mockItemRepo) CreateBatch(ctx context.Context, items []*domain.InventoryItem) error {
	return m.createBatchFunc(ctx, items)
}

func (m *mockItemRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockItemRepo) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error) {
	return m.listByProjectFunc(ctx, tenantID, projectID)
}

func (m *mockItemRepo) Patch(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch) (*domain.InventoryItem, error) {
	return m.patchFunc(ctx, tenantID, id, patch)
}

func (m *mockItemRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	return m.deleteFunc(ctx, tenantID, id)
}

func (m *mockItemRepo) Summary(ctx context.Context, tenantID uuid.UUID) ([]*domain.ProjectSummary, error) {
	return m.summaryFunc(ctx, tenantID)
}

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	listAPIKeysFunc   func(ctx context.Context, tenantID, userID uuid.UUID) ([]*domain.APIKey, error)
	deleteAPIKeyFunc  func(ctx context.Context, id uuid.UUID) error
	getByIDFunc       func(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error)
	getByEmailFunc    func(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
	createFunc        func(ctx context.Context, u *domain.User) error
	createAPIKeyFunc  func(ctx context.Context, key *domain.APIKey) error
	getKeyPrefixFunc  func(ctx context.Context, tenantID uuid.UUID, prefix string) (*domain.APIKey, error)
	updateKeyUsedFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, tenantID, email)
}

func (m *mockUserRepo) Update(_ context.Context, _ *domain.User) error { panic("not implemented") }

func (m *mockUserRepo) List(_ context.Context, _ uuid.UUID) ([]*domain.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) CreateAPIKey(ctx context.Context, key *domain.APIKey) error {
	return m.createAPIKeyFunc(ctx, key)
}

func (m *mockUserRepo) GetAPIKeyByPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*domain.APIKey, error) {
	return m.getKeyPrefixFunc(ctx, tenantID, prefix)
}

func (m *mockUserRepo) ListAPIKeys(ctx context.Context, tenantID, userID uuid.UUID) ([]*domain.APIKey, error) {
	return m.listAPIKeysFunc(ctx, tenantID, userID)
}

func (m *mockUserRepo) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	return m.deleteAPIKeyFunc(ctx, id)
}

func (m *mockUserRepo) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	return m.updateKeyUsedFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock AuditRepository
// ---------------------------------------------------------------------------

type mockAuditRepo struct {
	recordFunc         func(ctx context.Context, entry *domain.AuditEntry) error
	listByTenantFunc   func(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.AuditEntry, error)
	listByDocumentFunc func(ctx context.Context, tenantID uuid.UUID, collection string, documentID uuid.UUID) ([]*domain.AuditEntry, error)
}

func (m *mockAuditRepo) Record(ctx context.Context, entry *domain.AuditEntry) error {
	return m.recordFunc(ctx, entry)
}

func (m *mockAuditRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.AuditEntry, error) {
	return m.listByTenantFunc(ctx, tenantID, limit, offset)
}

func (m *mockAuditRepo) ListByDocument(ctx context.Context, tenantID uuid.UUID, collection string, documentID uuid.UUID) ([]*domain.AuditEntry, error) {
	return m.listByDocumentFunc(ctx, tenantID, collection, documentID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc       func(ctx context.Context, tenantID uuid.UUID, email, password, name, role string) (*domain.User, error)
	loginFunc          func(ctx context.Context, tenantID uuid.UUID, email, password string) (string, string, error)
	refreshTokenFunc   func(ctx context.Context, refreshToken string) (string, error)
	generateAPIKeyFunc func(ctx context.Context, tenantID, userID uuid.UUID, name string, expiresAt *time.Time) (string, *domain.APIKey, error)
}

func (m *mockAuthService) Register(ctx context.Context, tenantID uuid.UUID, email, password, name, role string) (*domain.User, error) {
	return m.registerFunc(ctx, tenantID, email, password, name, role)
}

func (m *mockAuthService) Login(ctx context.Context, tenantID uuid.UUID, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, tenantID, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GenerateAPIKey(ctx context.Context, tenantID, userID uuid.UUID, name string, expiresAt *time.Time) (string, *domain.APIKey, error) {
	return m.generateAPIKeyFunc(ctx, tenantID, userID, name, expiresAt)
}

// ---------------------------------------------------------------------------
// Mock InventoryService
// ---------------------------------------------------------------------------

type mockInventoryService struct {
	listFunc   func(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error)
	getFunc    func(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error)
	createFunc func(ctx context.Context, tenantID, projectID uuid.UUID, name string, quantity int, actor domain.Actor) (*domain.InventoryItem, error)
	updateFunc func(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.InventoryItem, error)
	deleteFunc func(ctx context.Context, tenantID, id uuid.UUID, actor domain.Actor) (*domain.InventoryItem, error)
	importFunc func(ctx context.Context, tenantID, projectID uuid.UUID, items []*domain.InventoryItem, actor domain.Actor) error
}

func (m *mockInventoryService) List(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.InventoryItem, error) {
	return m.listFunc(ctx, tenantID, projectID)
}

func (m *mockInventoryService) Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	return m.getFunc(ctx, tenantID, id)
}

func (m *mockInventoryService) Create(ctx context.Context, tenantID, projectID uuid.UUID, name string, quantity int, actor domain.Actor) (*domain.InventoryItem, error) {
	return m.createFunc(ctx, tenantID, projectID, name, quantity, actor)
}

func (m *mockInventoryService) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.InventoryItem, error) {
	return m.updateFunc(ctx, tenantID, id, patch, actor)
}

func (m *mockInventoryService) Delete(ctx context.Context, tenantID, id uuid.UUID, actor domain.Actor) (*domain.InventoryItem, error) {
	return m.deleteFunc(ctx, tenantID, id, actor)
}

func (m *mockInventoryService) Import(ctx context.Context, tenantID, projectID uuid.UUID, items []*domain.InventoryItem, actor domain.Actor) error {
	return m.importFunc(ctx, tenantID, projectID, items, actor)
}

// ---------------------------------------------------------------------------
// Recording notifier
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Broadcast(_ context.Context, _ uuid.UUID, ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) all() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Event, len(n.events))
	copy(out, n.events)
	return out
}
