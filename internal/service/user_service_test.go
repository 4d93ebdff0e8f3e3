package service

import (
	"context"
	"testing"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"
	"github.com/labnote/labnote-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mocks ---

type userMockUserRepo struct {
	domain.UserRepository
	users  map[int64]*domain.User
	nextID int64

	createErr error
	deleted   []int64
}

func (m *userMockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	if u, ok := m.users[uid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *userMockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *userMockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *userMockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	user.UID = m.nextID
	if m.users == nil {
		m.users = map[int64]*domain.User{}
	}
	m.users[user.UID] = user
	return user, nil
}

func (m *userMockUserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.users[user.UID] = user
	return user, nil
}

func (m *userMockUserRepo) Delete(ctx context.Context, uid int64) error {
	delete(m.users, uid)
	m.deleted = append(m.deleted, uid)
	return nil
}

type userMockProjectRepo struct {
	domain.ProjectRepository
	projects            map[int64]*domain.Project
	deletedOwner        []int64
	deletedCollaborator []int64
}

func (m *userMockProjectRepo) ListByMember(ctx context.Context, uid int64) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.projects {
		if p.IsOwner(uid) || p.HasCollaborator(uid) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *userMockProjectRepo) DeleteByOwner(ctx context.Context, ownerUID int64) error {
	m.deletedOwner = append(m.deletedOwner, ownerUID)
	return nil
}

func (m *userMockProjectRepo) DeleteCollaboratorsByUID(ctx context.Context, uid int64) error {
	m.deletedCollaborator = append(m.deletedCollaborator, uid)
	return nil
}

type userMockEntryRepo struct {
	domain.EntryRepository
	unlinked      []int64
	deletedAuthor []int64
}

func (m *userMockEntryRepo) UnlinkProject(ctx context.Context, projectID int64) error {
	m.unlinked = append(m.unlinked, projectID)
	return nil
}

func (m *userMockEntryRepo) DeleteByAuthor(ctx context.Context, authorUID int64) error {
	m.deletedAuthor = append(m.deletedAuthor, authorUID)
	return nil
}

type userMockTemplateRepo struct {
	domain.TemplateRepository
	deletedOwner []int64
}

func (m *userMockTemplateRepo) DeleteByOwner(ctx context.Context, ownerUID int64) error {
	m.deletedOwner = append(m.deletedOwner, ownerUID)
	return nil
}

func newUserFixture() (*userMockUserRepo, *userMockProjectRepo, *userMockEntryRepo, UserService) {
	hash, _ := util.GeneratePasswordHash("secret123")
	userRepo := &userMockUserRepo{
		users: map[int64]*domain.User{
			1: {UID: 1, Username: "alice", Email: "alice@example.com", Password: hash},
		},
		nextID: 1,
	}
	projectRepo := &userMockProjectRepo{projects: map[int64]*domain.Project{}}
	entryRepo := &userMockEntryRepo{}
	templateRepo := &userMockTemplateRepo{}
	tokenManager := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})
	cfg := &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: true}}

	svc := NewUserService(userRepo, entryRepo, projectRepo, templateRepo, tokenManager, zap.NewNop(), cfg)
	return userRepo, projectRepo, entryRepo, svc
}

// --- Tests ---

func TestUserService_Register(t *testing.T) {
	_, _, _, svc := newUserFixture()
	ctx := context.Background()

	d, err := svc.Register(ctx, &dto.UserCreateRequest{Username: "bob", Email: "bob@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if d.Username != "bob" {
		t.Errorf("expected username bob, got %q", d.Username)
	}
	if d.Token == "" {
		t.Error("expected token to be issued on register")
	}

	// 用户名重复
	_, err = svc.Register(ctx, &dto.UserCreateRequest{Username: "alice", Password: "secret123"})
	assertCode(t, err, code.ErrorUserAlreadyExists)

	// 邮箱重复
	_, err = svc.Register(ctx, &dto.UserCreateRequest{Username: "carol", Email: "alice@example.com", Password: "secret123"})
	assertCode(t, err, code.ErrorUserEmailAlreadyExists)

	// 非法用户名
	_, err = svc.Register(ctx, &dto.UserCreateRequest{Username: "x", Password: "secret123"})
	assertCode(t, err, code.ErrorUserUsernameNotValid)
}

func TestUserService_Register_Disabled(t *testing.T) {
	userRepo := &userMockUserRepo{users: map[int64]*domain.User{}}
	tokenManager := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})
	cfg := &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: false}}
	svc := NewUserService(userRepo, &userMockEntryRepo{}, &userMockProjectRepo{}, &userMockTemplateRepo{}, tokenManager, zap.NewNop(), cfg)

	_, err := svc.Register(context.Background(), &dto.UserCreateRequest{Username: "bob", Password: "secret123"})
	assertCode(t, err, code.ErrorUserRegisterIsDisable)
}

func TestUserService_Login(t *testing.T) {
	_, _, _, svc := newUserFixture()
	ctx := context.Background()

	d, err := svc.Login(ctx, &dto.UserLoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if d.Token == "" {
		t.Error("expected token on login")
	}

	// 密码错误与用户不存在返回同一错误
	_, errWrong := svc.Login(ctx, &dto.UserLoginRequest{Username: "alice", Password: "wrong"})
	assertCode(t, errWrong, code.ErrorUserLoginPasswordFailed)
	_, errMissing := svc.Login(ctx, &dto.UserLoginRequest{Username: "nobody", Password: "secret123"})
	assertCode(t, errMissing, code.ErrorUserLoginPasswordFailed)
}

func TestUserService_CheckUsername(t *testing.T) {
	_, _, _, svc := newUserFixture()
	ctx := context.Background()

	d, err := svc.CheckUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("CheckUsername failed: %v", err)
	}
	if d.Available {
		t.Error("expected taken username to be unavailable")
	}

	d, err = svc.CheckUsername(ctx, "brand_new")
	if err != nil {
		t.Fatalf("CheckUsername failed: %v", err)
	}
	if !d.Available {
		t.Error("expected free username to be available")
	}

	// 非法用户名不可用，但不报错
	d, err = svc.CheckUsername(ctx, "a")
	if err != nil {
		t.Fatalf("CheckUsername failed: %v", err)
	}
	if d.Available {
		t.Error("expected invalid username to be unavailable")
	}
}

func TestUserService_UpdateMe(t *testing.T) {
	_, _, _, svc := newUserFixture()
	ctx := context.Background()

	// 只改头像不重签 Token
	d, err := svc.UpdateMe(ctx, 1, &dto.UserUpdateRequest{Avatar: "https://example.com/a.png"})
	if err != nil {
		t.Fatalf("UpdateMe failed: %v", err)
	}
	if d.Token != "" {
		t.Error("avatar-only update must not reissue token")
	}

	// 改用户名重签 Token
	d, err = svc.UpdateMe(ctx, 1, &dto.UserUpdateRequest{Username: "alice2"})
	if err != nil {
		t.Fatalf("UpdateMe rename failed: %v", err)
	}
	if d.Username != "alice2" {
		t.Errorf("expected renamed user, got %q", d.Username)
	}
	if d.Token == "" {
		t.Error("rename must reissue token")
	}
}

// 注销时级联顺序：先解绑本人项目下的条目，再删条目、项目、模板、账户
func TestUserService_DeleteMe(t *testing.T) {
	userRepo, projectRepo, entryRepo, svc := newUserFixture()
	ctx := context.Background()

	projectRepo.projects = map[int64]*domain.Project{
		10: {ID: 10, OwnerUID: 1},
		20: {ID: 20, OwnerUID: 2, CollaboratorUIDs: []int64{1}},
	}

	if err := svc.DeleteMe(ctx, 1); err != nil {
		t.Fatalf("DeleteMe failed: %v", err)
	}

	// 仅本人拥有的项目被解绑，参与协作的项目不受影响
	if len(entryRepo.unlinked) != 1 || entryRepo.unlinked[0] != 10 {
		t.Errorf("expected only owned project 10 unlinked, got %v", entryRepo.unlinked)
	}
	if len(entryRepo.deletedAuthor) != 1 || entryRepo.deletedAuthor[0] != 1 {
		t.Errorf("expected entries of uid 1 deleted, got %v", entryRepo.deletedAuthor)
	}
	if len(projectRepo.deletedOwner) != 1 || projectRepo.deletedOwner[0] != 1 {
		t.Errorf("expected projects of uid 1 deleted, got %v", projectRepo.deletedOwner)
	}
	// 他人项目中的协作者关系也被清理，不留悬空成员
	if len(projectRepo.deletedCollaborator) != 1 || projectRepo.deletedCollaborator[0] != 1 {
		t.Errorf("expected collaborator rows of uid 1 deleted, got %v", projectRepo.deletedCollaborator)
	}
	if len(userRepo.deleted) != 1 || userRepo.deleted[0] != 1 {
		t.Errorf("expected account 1 deleted, got %v", userRepo.deleted)
	}
}

// 联合登录身份绑定幂等：同一邮箱多次登录命中同一账户
func TestUserService_ResolveOrCreateFederated(t *testing.T) {
	userRepo, _, _, svc := newUserFixture()
	ctx := context.Background()

	identity := &FederatedIdentity{
		Provider: "orcid",
		Email:    "new@example.com",
		Name:     "New Researcher",
		Avatar:   "https://example.com/n.png",
	}

	// 首次登录创建账户
	d1, err := svc.ResolveOrCreateFederated(ctx, identity)
	if err != nil {
		t.Fatalf("first federated login failed: %v", err)
	}
	if d1.Provider != "orcid" {
		t.Errorf("expected provider orcid, got %q", d1.Provider)
	}
	if d1.Username != "new_researcher" {
		t.Errorf("expected derived username new_researcher, got %q", d1.Username)
	}
	if d1.Token == "" {
		t.Error("expected token on federated login")
	}

	// 再次登录命中同一账户，不重复创建
	d2, err := svc.ResolveOrCreateFederated(ctx, identity)
	if err != nil {
		t.Fatalf("second federated login failed: %v", err)
	}
	if d2.UID != d1.UID {
		t.Errorf("expected same account, got %d and %d", d1.UID, d2.UID)
	}
	if len(userRepo.users) != 2 {
		t.Errorf("expected 2 users total, got %d", len(userRepo.users))
	}

	// 已注册邮箱绑定提供方，不创建新账户
	d3, err := svc.ResolveOrCreateFederated(ctx, &FederatedIdentity{
		Provider: "orcid",
		Email:    "alice@example.com",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("binding to existing account failed: %v", err)
	}
	if d3.UID != 1 {
		t.Errorf("expected existing account 1, got %d", d3.UID)
	}
	if userRepo.users[1].Provider != "orcid" {
		t.Errorf("expected provider bound to existing account, got %q", userRepo.users[1].Provider)
	}

	// 邮箱缺失直接失败
	_, err = svc.ResolveOrCreateFederated(ctx, &FederatedIdentity{Provider: "orcid"})
	assertCode(t, err, code.ErrorOAuthLoginFailed)
}

// 联合登录用户名冲突时追加随机后缀
func TestUserService_FederatedUsernameCollision(t *testing.T) {
	userRepo, _, _, svc := newUserFixture()
	ctx := context.Background()

	d, err := svc.ResolveOrCreateFederated(ctx, &FederatedIdentity{
		Provider: "github",
		Email:    "alice2@example.com",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("federated login failed: %v", err)
	}
	if d.Username == "alice" {
		t.Error("expected collision-avoiding username, got 'alice'")
	}
	if len(userRepo.users) != 2 {
		t.Errorf("expected new account to be created, got %d users", len(userRepo.users))
	}
}

// 单元测试: 外部名称规整
func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "New Researcher", want: "new_researcher"},
		{in: "Jean-Luc", want: "jean_luc"},
		{in: "a.b.c", want: "a_b_c"},
		{in: "ab", want: ""},
		{in: "日本語", want: ""},
		{in: "averyveryverylongusername", want: "averyveryverylon"},
	}

	for _, tt := range tests {
		if got := sanitizeUsername(tt.in); got != tt.want {
			t.Errorf("sanitizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
