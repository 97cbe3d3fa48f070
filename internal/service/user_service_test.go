package service

import (
	"context"
	"testing"

	"prodtrack/internal/apperr"
	"prodtrack/internal/dto"
	"prodtrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc    UserService
	users  *stubUserRepo
	access *stubAccessRepo
}

func newUserFixture() *userFixture {
	users := newStubUserRepo()
	access := newStubAccessRepo()
	return &userFixture{svc: NewUserService(users, access), users: users, access: access}
}

func TestCreateUserTrimsAndHashes(t *testing.T) {
	f := newUserFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateUserRequest{
		Username:  "  janedoe ",
		Password:  "pw123",
		Role:      model.RoleProductionManager,
		FirstName: " Jane ",
		LastName:  " Doe ",
	})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", resp.Username)
	assert.Equal(t, "Jane", resp.FirstName)
	assert.Equal(t, "Doe", resp.LastName)

	stored, err := f.users.FindByUsername(context.Background(), "janedoe")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	f := newUserFixture()
	f.users.add("janedoe", model.RoleProductionManager)

	_, err := f.svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "janedoe",
		Password: "pw123",
		Role:     model.RoleProductionManager,
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateUserProfileOnly(t *testing.T) {
	f := newUserFixture()
	u := f.users.add("janedoe", model.RoleProductionManager)

	first := "Janet"
	resp, err := f.svc.Update(context.Background(), u.ID, dto.UpdateUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Janet", resp.FirstName)
	// Untouched fields survive a partial update.
	assert.Equal(t, "janedoe", resp.Username)
	assert.Equal(t, model.RoleProductionManager, resp.Role)
}

func TestUpdateUserPassword(t *testing.T) {
	f := newUserFixture()
	u := f.users.add("janedoe", model.RoleProductionManager)
	before, _ := f.users.FindByID(context.Background(), u.ID)

	pw := "newpass"
	_, err := f.svc.Update(context.Background(), u.ID, dto.UpdateUserRequest{Password: &pw})
	require.NoError(t, err)

	after, _ := f.users.FindByID(context.Background(), u.ID)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
}

func TestUpdateUserNotFound(t *testing.T) {
	f := newUserFixture()
	_, err := f.svc.Update(context.Background(), 999, dto.UpdateUserRequest{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteUserCascadesGrants(t *testing.T) {
	f := newUserFixture()
	admin := f.users.add("admin", model.RoleAdmin)
	mgr := f.users.add("janedoe", model.RoleProductionManager)
	f.access.grant(mgr.ID, 1)
	f.access.grant(mgr.ID, 2)

	require.NoError(t, f.svc.Delete(context.Background(), mgr.ID, admin.ID))

	_, err := f.users.FindByID(context.Background(), mgr.ID)
	assert.Error(t, err)
	ids, err := f.access.ListVariantIDs(context.Background(), mgr.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteUserSelf(t *testing.T) {
	f := newUserFixture()
	admin := f.users.add("admin", model.RoleAdmin)

	err := f.svc.Delete(context.Background(), admin.ID, admin.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteUserNotFound(t *testing.T) {
	f := newUserFixture()
	admin := f.users.add("admin", model.RoleAdmin)

	err := f.svc.Delete(context.Background(), 999, admin.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListUsersSortedByUsername(t *testing.T) {
	f := newUserFixture()
	f.users.add("zed", model.RoleProductionManager)
	f.users.add("admin", model.RoleAdmin)
	f.users.add("janedoe", model.RoleProductionManager)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "admin", list[0].Username)
	assert.Equal(t, "janedoe", list[1].Username)
	assert.Equal(t, "zed", list[2].Username)
}
